package webapi

import (
	"errors"
	"fmt"

	"github.com/spboyer/vitta/internal/models"
	"github.com/spboyer/vitta/internal/transcript"
)

// ErrPlanNotFound is returned when a name does not match any saved plan.
var ErrPlanNotFound = errors.New("plan not found")

// PlanStore provides access to saved plans.
type PlanStore interface {
	// ListPlans returns all plans, newest first.
	ListPlans() ([]PlanSummary, error)
	// GetPlan returns a single plan by file name.
	GetPlan(name string) (*models.Transcript, error)
}

// FileStore reads transcripts from a directory on every request so plans
// saved while the server runs show up without a restart.
type FileStore struct {
	store *transcript.Store
}

// NewFileStore creates a FileStore that reads transcripts from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{store: transcript.NewStore(dir)}
}

// ListPlans implements PlanStore.
func (fs *FileStore) ListPlans() ([]PlanSummary, error) {
	infos, err := fs.store.List()
	if err != nil {
		return nil, err
	}
	plans := make([]PlanSummary, 0, len(infos))
	for _, info := range infos {
		plans = append(plans, PlanSummary{
			Name:         info.Filename,
			Timestamp:    info.Timestamp,
			DateReadable: info.TimestampReadable,
			SizeKB:       info.SizeKB,
		})
	}
	return plans, nil
}

// GetPlan implements PlanStore. Unknown and malformed names both map to
// ErrPlanNotFound.
func (fs *FileStore) GetPlan(name string) (*models.Transcript, error) {
	t, err := fs.store.Open(name)
	if errors.Is(err, transcript.ErrNotFound) || errors.Is(err, transcript.ErrInvalidName) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	return t, err
}
