package chat

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/flipspace/flipspace/core"
)

var (
	// errors
	ErrNotFound = errors.New("conversation not found")
)

type (
	// Repository persists the Conversations collection wholesale.
	// ok == false on read means fall back to seed data.
	Repository interface {
		GetConversations() ([]Conversation, bool, error)
		SetConversations([]Conversation) error
	}

	Service struct {
		repo Repository
		seed []Conversation

		lag time.Duration
	}
)

func NewService(repo Repository, seed []Conversation, conf *core.Config) *Service {
	return &Service{
		repo: repo,
		seed: seed,
		lag:  conf.Latency,
	}
}

func (svc *Service) current() ([]Conversation, error) {
	stored, ok, err := svc.repo.GetConversations()
	if err != nil {
		return nil, err
	}
	if ok {
		return stored, nil
	}
	out := make([]Conversation, len(svc.seed))
	copy(out, svc.seed)
	return out, nil
}

func (svc *Service) Fetch() ([]Conversation, error) {
	core.SimulateLatency(svc.lag)
	return svc.current()
}

// Create always creates a fresh conversation with the target party.
// Checking for an existing conversation with the same participant is the
// caller's responsibility; skipping the check produces duplicates.
func (svc *Service) Create(target Participant) (Conversation, error) {
	core.SimulateLatency(svc.lag)

	conversations, err := svc.current()
	if err != nil {
		return Conversation{}, err
	}
	convo := Conversation{
		ID:          "convo-" + uuid.New().String(),
		Participant: target,
		Messages:    []Message{},
		LastMessage: fmt.Sprintf("Conversation with %s started.", target.Name),
	}
	if err := svc.repo.SetConversations(append(conversations, convo)); err != nil {
		return Conversation{}, pkgerrors.Wrap(err, "persisting conversations")
	}
	return convo, nil
}

// Send appends a message and refreshes the conversation's lastMessage cache.
// Unknown conversation IDs are an explicit error rather than a silent no-op.
func (svc *Service) Send(conversationID string, nm NewMessage) (Message, error) {
	core.SimulateLatency(svc.lag)

	conversations, err := svc.current()
	if err != nil {
		return Message{}, err
	}
	for i := range conversations {
		if conversations[i].ID != conversationID {
			continue
		}
		msg := Message{
			ID:         "m-" + uuid.New().String(),
			SenderID:   nm.SenderID,
			SenderName: nm.SenderName,
			Text:       nm.Text,
			Timestamp:  time.Now().UTC(),
		}
		conversations[i].Messages = append(conversations[i].Messages, msg)
		conversations[i].LastMessage = msg.Text
		if err := svc.repo.SetConversations(conversations); err != nil {
			return Message{}, pkgerrors.Wrap(err, "persisting conversations")
		}
		return msg, nil
	}
	return Message{}, ErrNotFound
}
