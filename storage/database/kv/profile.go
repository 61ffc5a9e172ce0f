package kvrepos

import (
	"context"

	"github.com/trezcool/lessonnotes/core"
	"github.com/trezcool/lessonnotes/core/profile"
)

type profileStore struct {
	kv core.KeyValueStore
}

var _ profile.Store = (*profileStore)(nil) // interface compliance check

func NewProfileStore(kv core.KeyValueStore) profile.Store {
	return &profileStore{kv: kv}
}

func (s *profileStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok, err := s.kv.Get(ctx, key)
	return string(val), ok, err
}

func (s *profileStore) Set(ctx context.Context, key, value string) error {
	return s.kv.Set(ctx, key, []byte(value))
}
