package chat

import "time"

type (
	// Conversation models a two-party exchange from the session user's
	// viewpoint: Participant is the denormalized other party.
	Conversation struct {
		ID          string      `json:"id"`
		Participant Participant `json:"participant"`
		Messages    []Message   `json:"messages"`
		LastMessage string      `json:"lastMessage"` // denormalized cache of the latest text
	}

	Participant struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	}

	Message struct {
		ID         string    `json:"id"`
		SenderID   string    `json:"senderId"`
		SenderName string    `json:"senderName"`
		Text       string    `json:"text"`
		Timestamp  time.Time `json:"timestamp"`
	}

	// NewMessage is the sender's payload; ID and Timestamp are assigned on
	// append.
	NewMessage struct {
		SenderID   string `json:"senderId"`
		SenderName string `json:"senderName"`
		Text       string `json:"text"`
	}
)
