package storage

import "github.com/flipspace/flipspace/core/chat"

var _ chat.Repository = (*Store)(nil)

func (s *Store) GetConversations() ([]chat.Conversation, bool, error) {
	var conversations []chat.Conversation
	ok, err := s.get(nsConversations, &conversations)
	return conversations, ok, err
}

func (s *Store) SetConversations(conversations []chat.Conversation) error {
	return s.set(nsConversations, conversations)
}
