package ports

import (
	"delivery-ops-service/internal/domain"
	"io"
)

// Port: renders a roster into a downloadable document.
type RosterExporter interface {
	ContentType() string
	FileExtension() string
	WriteRoster(w io.Writer, drivers []*domain.DriverProfile) error
}
