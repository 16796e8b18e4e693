package storage

import "github.com/flipspace/flipspace/core/resource"

var _ resource.Repository = (*Store)(nil)

func (s *Store) GetResources() ([]resource.Resource, bool, error) {
	var resources []resource.Resource
	ok, err := s.get(nsResources, &resources)
	return resources, ok, err
}

func (s *Store) SetResources(resources []resource.Resource) error {
	return s.set(nsResources, resources)
}
