package repository

import (
	"context"

	"petcareapi/internal/model"
)

// MissingReportRepository defines data access for missing-pet reports.
type MissingReportRepository interface {
	// CreateActive inserts a new report in the Active state, conditionally:
	// the insert is a single statement that is a no-op when the pet already
	// has an active report, in which case ErrDuplicateActiveReport is
	// returned and nothing is written.
	CreateActive(ctx context.Context, r *model.MissingReport) (*model.MissingReport, error)

	FindByID(ctx context.Context, id string) (*model.MissingReport, error)
	List(ctx context.Context) ([]model.MissingReport, error)

	// MarkFound flips active to false. Idempotent; re-marking a found report
	// is not an error. Returns sql.ErrNoRows if the report does not exist.
	MarkFound(ctx context.Context, id string) error

	// AppendSighting atomically appends sightingID to the report's sighting
	// list. Concurrent appends never drop entries.
	AppendSighting(ctx context.Context, id, sightingID string) error
}
