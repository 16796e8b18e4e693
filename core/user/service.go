package user

import (
	"errors"
	"time"

	"github.com/flipspace/flipspace/core"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	// Repository persists the current session. The roster itself is never
	// written; fixtures are the sole source of truth for credentials.
	Repository interface {
		GetSession() (Session, bool, error)
		SetSession(Session) error
		ClearSession() error
	}

	Service struct {
		repo   Repository
		roster []User

		lag      time.Duration
		shortLag time.Duration
	}
)

func NewService(repo Repository, roster []User, conf *core.Config) *Service {
	return &Service{
		repo:     repo,
		roster:   roster,
		lag:      conf.Latency,
		shortLag: conf.ShortLatency,
	}
}

// Authenticate matches username+password against the roster and, on success,
// persists and returns the redacted session.
func (svc *Service) Authenticate(username, password string) (Session, error) {
	core.SimulateLatency(svc.lag)

	username = core.CleanString(username, true /* lower */)
	for _, usr := range svc.roster {
		if usr.Username == username && usr.Password == password {
			sess := usr.Redact()
			if err := svc.repo.SetSession(sess); err != nil {
				return Session{}, err
			}
			return sess, nil
		}
	}
	return Session{}, ErrInvalidCredentials
}

// Logout clears the session unconditionally.
func (svc *Service) Logout() error {
	core.SimulateLatency(svc.shortLag)
	return svc.repo.ClearSession()
}

// Current returns the persisted session, if any. No simulated latency:
// consumers poll it on startup.
func (svc *Service) Current() (Session, bool, error) {
	return svc.repo.GetSession()
}

// Find looks a user up in the static roster by username. Synchronous;
// the roster never changes at runtime.
func (svc *Service) Find(username string) (Session, bool) {
	username = core.CleanString(username, true /* lower */)
	for _, usr := range svc.roster {
		if usr.Username == username {
			return usr.Redact(), true
		}
	}
	return Session{}, false
}

// Roster returns the redacted roster, for directory-style listings.
func (svc *Service) Roster() []Session {
	out := make([]Session, 0, len(svc.roster))
	for _, usr := range svc.roster {
		out = append(out, usr.Redact())
	}
	return out
}
