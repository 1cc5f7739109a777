package domain

import "time"

// Represents a driver as shown on the back-office roster.
// CDLNumber and CDLExpirationDate are only meaningful when HasCDL is true.
// CDLExpirationDate is a calendar date formatted as YYYY-MM-DD.
type DriverProfile struct {
	ID                string
	UserID            string
	Email             string
	FirstName         string
	LastName          string
	HasCDL            bool
	CDLNumber         *string
	CDLExpirationDate *string
	IsActive          bool
	CreatedAt         time.Time
}

func (d *DriverProfile) FullName() string {
	return d.FirstName + " " + d.LastName
}

// Visible reports whether the roster shows d.
func Visible(d *DriverProfile, showInactive bool) bool {
	return showInactive || d.IsActive
}

// FilterRoster keeps the visible drivers, preserving order.
func FilterRoster(drivers []*DriverProfile, showInactive bool) []*DriverProfile {
	out := make([]*DriverProfile, 0, len(drivers))
	for _, d := range drivers {
		if Visible(d, showInactive) {
			out = append(out, d)
		}
	}
	return out
}

// CDLUpdate is the set of columns written by a CDL edit.
// A nil Number or ExpirationDate clears the column.
type CDLUpdate struct {
	HasCDL         bool
	Number         *string
	ExpirationDate *string
}

// NewCDLUpdate keeps the number and expiration only when the driver holds a
// CDL and both values were supplied; otherwise both are cleared.
func NewCDLUpdate(hasCDL bool, number, expiration string) CDLUpdate {
	u := CDLUpdate{HasCDL: hasCDL}
	if hasCDL && number != "" && expiration != "" {
		u.Number = &number
		u.ExpirationDate = &expiration
	}
	return u
}
