package resource

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/flipspace/flipspace/core"
	"github.com/flipspace/flipspace/core/social"
	"github.com/flipspace/flipspace/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("resource not found")
)

type (
	// Repository persists the Resources collection wholesale.
	// ok == false on read means the collection was never written and the
	// caller must fall back to seed data.
	Repository interface {
		GetResources() ([]Resource, bool, error)
		SetResources([]Resource) error
	}

	Service struct {
		repo     Repository
		seed     []Resource
		social   social.Repository
		roster   []user.User
		mailSvc  core.EmailService
		validate *validator.Validate

		lag time.Duration
	}
)

func NewService(
	repo Repository,
	seed []Resource,
	socialRepo social.Repository,
	roster []user.User,
	mailSvc core.EmailService,
	validate *validator.Validate,
	conf *core.Config,
) *Service {
	return &Service{
		repo:     repo,
		seed:     seed,
		social:   socialRepo,
		roster:   roster,
		mailSvc:  mailSvc,
		validate: validate,
		lag:      conf.Latency,
	}
}

// current resolves the authoritative collection state: the stored copy if one
// exists, the bundled seed otherwise. The seed is never consulted again after
// the first write, so deleting the last seeded item does not resurrect it.
func (svc *Service) current() ([]Resource, error) {
	stored, ok, err := svc.repo.GetResources()
	if err != nil {
		return nil, err
	}
	if ok {
		return stored, nil
	}
	out := make([]Resource, len(svc.seed))
	copy(out, svc.seed)
	return out, nil
}

func (svc *Service) Fetch() ([]Resource, error) {
	core.SimulateLatency(svc.lag)
	return svc.current()
}

// Create publishes a new resource with zeroed engagement counters and
// notifies followers of the uploader by email.
func (svc *Service) Create(nr NewResource) (Resource, error) {
	core.SimulateLatency(svc.lag)

	if err := nr.Validate(svc.validate); err != nil {
		return Resource{}, err
	}

	resources, err := svc.current()
	if err != nil {
		return Resource{}, err
	}
	res := Resource{
		ID:          "r-" + uuid.New().String(),
		Title:       nr.Title,
		Description: nr.Description,
		Module:      nr.Module,
		Type:        nr.Type,
		URL:         nr.URL,
		UploadedBy:  nr.UploadedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := svc.repo.SetResources(append(resources, res)); err != nil {
		return Resource{}, pkgerrors.Wrap(err, "persisting resources")
	}

	svc.notifyFollowers(res)
	return res, nil
}

func (svc *Service) Update(id string, ur UpdateResource) (Resource, error) {
	core.SimulateLatency(svc.lag)

	if err := ur.Validate(svc.validate); err != nil {
		return Resource{}, err
	}

	resources, err := svc.current()
	if err != nil {
		return Resource{}, err
	}
	for i, res := range resources {
		if res.ID == id {
			resources[i] = ur.apply(res)
			if err := svc.repo.SetResources(resources); err != nil {
				return Resource{}, pkgerrors.Wrap(err, "persisting resources")
			}
			return resources[i], nil
		}
	}
	return Resource{}, ErrNotFound
}

// Delete hard-removes the resource. Unknown IDs are a no-op; dangling
// lessonId references in quizzes and discussions are tolerated.
func (svc *Service) Delete(id string) error {
	core.SimulateLatency(svc.lag)

	resources, err := svc.current()
	if err != nil {
		return err
	}
	kept := resources[:0]
	for _, res := range resources {
		if res.ID != id {
			kept = append(kept, res)
		}
	}
	return svc.repo.SetResources(kept)
}

// notifyFollowers emails every user following the uploader. Failures here
// never fail the publish; the mail service is fire-and-forget.
func (svc *Service) notifyFollowers(res Resource) {
	graphs, err := svc.social.GetSocial()
	if err != nil {
		return
	}

	var to []mail.Address
	for _, usr := range svc.roster {
		for _, followed := range graphs[usr.ID].Following {
			if followed == res.UploadedBy {
				to = append(to, mail.Address{Name: usr.Name, Address: usr.Email})
				break
			}
		}
	}
	if len(to) == 0 {
		return
	}

	var uploader string
	for _, usr := range svc.roster {
		if usr.ID == res.UploadedBy {
			uploader = usr.Name
			break
		}
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		Bcc:     to,
		Subject: fmt.Sprintf("New %s in %s: %s", res.Type, res.Module, res.Title),
		TextContent: fmt.Sprintf(
			"%s published a new %s resource in %s.\n\n%s\n%s\n",
			uploader, res.Type, res.Module, res.Title, res.URL,
		),
	})
}
