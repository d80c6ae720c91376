package store

import "time"

// NopStore is a no-op store used when seen-job tracking is disabled. It never
// marks jobs as seen, so every match is reported on each cycle.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) HasSeen(url string) (bool, error)      { return false, nil }
func (s *NopStore) MarkSeen(url string) error             { return nil }
func (s *NopStore) Cleanup(olderThan time.Duration) error { return nil }
func (s *NopStore) IsEmpty() (bool, error)                { return false, nil }
