package activity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/flipspace/flipspace/core"
)

type (
	// Repository appends to and reads the per-user activity logs.
	Repository interface {
		AppendActivity(userID string, entry Entry) error
		ActivitiesByUser(userID string) ([]Entry, error)
	}

	Service struct {
		repo Repository

		shortLag time.Duration
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{
		repo:     repo,
		shortLag: conf.ShortLatency,
	}
}

// Log unconditionally appends an audit entry. The log is never pruned.
func (svc *Service) Log(userID, entryType string, details interface{}) error {
	core.SimulateLatency(svc.shortLag)

	raw, err := json.Marshal(details)
	if err != nil {
		return pkgerrors.Wrap(err, "encoding activity details")
	}
	return svc.repo.AppendActivity(userID, Entry{
		ID:        "act-" + uuid.New().String(),
		Type:      entryType,
		Details:   raw,
		Timestamp: time.Now().UTC(),
	})
}

// ByUser returns the user's full activity history, oldest first.
func (svc *Service) ByUser(userID string) ([]Entry, error) {
	return svc.repo.ActivitiesByUser(userID)
}
