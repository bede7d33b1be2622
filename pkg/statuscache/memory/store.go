package memory

import "codeberg.org/miketth/niriwindows/pkg/niriwindows"

type StatusCache struct {
	status niriwindows.Status
	ok     bool
}

func NewStatusCache() *StatusCache {
	return &StatusCache{}
}

func (s *StatusCache) LastStatus() (niriwindows.Status, bool, error) {
	return s.status, s.ok, nil
}

func (s *StatusCache) SaveStatus(status niriwindows.Status) error {
	s.status = status
	s.ok = true
	return nil
}
