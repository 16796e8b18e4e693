package progress

import (
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/core/resource"
)

type (
	// Repository persists per-user progress sets. The Mark* mutators are
	// idempotent and report whether the id was actually inserted; that flag
	// gates the resource-level counter bump.
	Repository interface {
		MarkCompleted(userID, resourceID string) (inserted bool, err error)
		MarkViewed(userID, resourceID string) (inserted bool, err error)
		GetProgress(userID string) (Progress, error)
		ResetProgress(userID string) error
	}

	Service struct {
		repo      Repository
		resources resource.Repository
		seed      []resource.Resource

		shortLag time.Duration
	}
)

func NewService(repo Repository, resources resource.Repository, seed []resource.Resource, conf *core.Config) *Service {
	return &Service{
		repo:      repo,
		resources: resources,
		seed:      seed,
		shortLag:  conf.ShortLatency,
	}
}

// MarkComplete idempotently records the completion and bumps the resource's
// completions counter exactly once per distinct user.
func (svc *Service) MarkComplete(userID, resourceID string) error {
	core.SimulateLatency(svc.shortLag)

	inserted, err := svc.repo.MarkCompleted(userID, resourceID)
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}
	return svc.bump(resourceID, func(r *resource.Resource) { r.Completions++ })
}

// MarkViewed idempotently records the view and bumps the resource's views
// counter exactly once per distinct user.
func (svc *Service) MarkViewed(userID, resourceID string) error {
	core.SimulateLatency(svc.shortLag)

	inserted, err := svc.repo.MarkViewed(userID, resourceID)
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}
	return svc.bump(resourceID, func(r *resource.Resource) { r.Views++ })
}

// Get never fails: unknown users get an empty progress record.
// Synchronous; the UI reads it on every render.
func (svc *Service) Get(userID string) (Progress, error) {
	return svc.repo.GetProgress(userID)
}

// Reset clears both progress sets. Quiz attempt histories and activity logs
// are untouched.
func (svc *Service) Reset(userID string) error {
	core.SimulateLatency(svc.shortLag)
	return svc.repo.ResetProgress(userID)
}

// bump applies a counter mutation to the matching resource via wholesale
// read-modify-write. Unknown resource IDs are tolerated as a no-op.
func (svc *Service) bump(resourceID string, mutate func(*resource.Resource)) error {
	resources, ok, err := svc.resources.GetResources()
	if err != nil {
		return err
	}
	if !ok {
		resources = make([]resource.Resource, len(svc.seed))
		copy(resources, svc.seed)
	}
	for i := range resources {
		if resources[i].ID == resourceID {
			mutate(&resources[i])
			break
		}
	}
	if err := svc.resources.SetResources(resources); err != nil {
		return pkgerrors.Wrap(err, "persisting resources")
	}
	return nil
}
