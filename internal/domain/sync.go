package domain

import "time"

type SyncType string

const (
	SyncCategories      SyncType = "categories"
	SyncBrandingMethods SyncType = "branding_methods"
	SyncProducts        SyncType = "products"
)

type SyncStatus string

const (
	SyncRunning   SyncStatus = "running"
	SyncCompleted SyncStatus = "completed"
	SyncFailed    SyncStatus = "failed"
)

// SyncRunLog is the audit record for one phase of one sync. It is created
// running and moves to completed or failed exactly once.
type SyncRunLog struct {
	ID               string     `db:"id" json:"id"`
	SyncType         SyncType   `db:"sync_type" json:"syncType"`
	Status           SyncStatus `db:"status" json:"status"`
	RecordsProcessed int        `db:"records_processed" json:"recordsProcessed"`
	ErrorMessage     string     `db:"error_message" json:"errorMessage,omitempty"`
	StartedAt        time.Time  `db:"started_at" json:"startedAt"`
	CompletedAt      *time.Time `db:"completed_at" json:"completedAt,omitempty"`
}

func (l SyncRunLog) Terminal() bool {
	return l.Status == SyncCompleted || l.Status == SyncFailed
}
