package storage

import "github.com/flipspace/flipspace/core/social"

var _ social.Repository = (*Store)(nil)

func (s *Store) GetSocial() (map[string]social.Graph, error) {
	graphs := make(map[string]social.Graph)
	if _, err := s.get(nsSocial, &graphs); err != nil {
		return nil, err
	}
	return graphs, nil
}

func (s *Store) SetSocial(graphs map[string]social.Graph) error {
	return s.set(nsSocial, graphs)
}
