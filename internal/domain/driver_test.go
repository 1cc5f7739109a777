package domain

import "testing"

func TestFilterRoster(t *testing.T) {
	a := &DriverProfile{ID: "a", IsActive: true}
	b := &DriverProfile{ID: "b", IsActive: false}
	c := &DriverProfile{ID: "c", IsActive: true}
	drivers := []*DriverProfile{a, b, c}

	all := FilterRoster(drivers, true)
	if len(all) != 3 {
		t.Fatalf("show inactive: got %d drivers, want 3", len(all))
	}

	active := FilterRoster(drivers, false)
	if len(active) != 2 || active[0] != a || active[1] != c {
		t.Fatalf("hide inactive: got %v", active)
	}

	for _, d := range drivers {
		for _, show := range []bool{true, false} {
			if got, want := Visible(d, show), show || d.IsActive; got != want {
				t.Errorf("Visible(%s, %v) = %v, want %v", d.ID, show, got, want)
			}
		}
	}
}

func TestNewCDLUpdate(t *testing.T) {
	u := NewCDLUpdate(true, "X123", "2030-01-01")
	if !u.HasCDL || u.Number == nil || *u.Number != "X123" || u.ExpirationDate == nil || *u.ExpirationDate != "2030-01-01" {
		t.Fatalf("unexpected update: %+v", u)
	}

	cases := []struct {
		name       string
		hasCDL     bool
		number     string
		expiration string
	}{
		{"no cdl with values", false, "X123", "2030-01-01"},
		{"no cdl empty", false, "", ""},
		{"cdl missing number", true, "", "2030-01-01"},
		{"cdl missing expiration", true, "X123", ""},
	}
	for _, tc := range cases {
		u := NewCDLUpdate(tc.hasCDL, tc.number, tc.expiration)
		if u.HasCDL != tc.hasCDL {
			t.Errorf("%s: HasCDL = %v, want %v", tc.name, u.HasCDL, tc.hasCDL)
		}
		if u.Number != nil || u.ExpirationDate != nil {
			t.Errorf("%s: expected cleared number and expiration, got %+v", tc.name, u)
		}
	}
}
