package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compostlink/compostlink/internal/account"
	"github.com/compostlink/compostlink/internal/account/cache"
)

type countingSource struct {
	profiles map[uuid.UUID]*account.Profile
	calls    [][]uuid.UUID
	err      error
}

func (s *countingSource) Profiles(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*account.Profile, error) {
	s.calls = append(s.calls, ids)
	if s.err != nil {
		return nil, s.err
	}

	out := make(map[uuid.UUID]*account.Profile)
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			out[id] = p
		}
	}

	return out, nil
}

func TestProfiles_CachesHits(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	src := &countingSource{profiles: map[uuid.UUID]*account.Profile{
		a: {ID: a, Name: "Ana"},
		b: {ID: b, Name: "Bo"},
	}}

	c, err := cache.New(src, 16, time.Minute)
	require.NoError(t, err)

	got, err := c.Profiles(context.Background(), []uuid.UUID{a})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got[a].Name)

	got, err = c.Profiles(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.Len(t, src.calls, 2)
	assert.Equal(t, []uuid.UUID{b}, src.calls[1])

	_, err = c.Profiles(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.Len(t, src.calls, 2)
}

func TestProfiles_Forget(t *testing.T) {
	a := uuid.New()
	src := &countingSource{profiles: map[uuid.UUID]*account.Profile{a: {ID: a}}}

	c, err := cache.New(src, 4, time.Minute)
	require.NoError(t, err)

	_, _ = c.Profiles(context.Background(), []uuid.UUID{a})
	c.Forget(a)
	_, _ = c.Profiles(context.Background(), []uuid.UUID{a})

	assert.Len(t, src.calls, 2)
}

func TestProfiles_SourceError(t *testing.T) {
	src := &countingSource{err: errors.New("db down")}

	c, err := cache.New(src, 4, time.Minute)
	require.NoError(t, err)

	_, err = c.Profiles(context.Background(), []uuid.UUID{uuid.New()})
	assert.Error(t, err)
}

func TestProfiles_Expires(t *testing.T) {
	a := uuid.New()
	src := &countingSource{profiles: map[uuid.UUID]*account.Profile{a: {ID: a, Name: "Ana"}}}

	c, err := cache.New(src, 4, 20*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Profiles(context.Background(), []uuid.UUID{a})
	require.NoError(t, err)

	src.profiles[a] = &account.Profile{ID: a, Name: "Ana B."}

	got, err := c.Profiles(context.Background(), []uuid.UUID{a})
	require.NoError(t, err)
	assert.Equal(t, "Ana", got[a].Name)
	require.Len(t, src.calls, 1)

	assert.Eventually(t, func() bool {
		got, err := c.Profiles(context.Background(), []uuid.UUID{a})
		return err == nil && got[a].Name == "Ana B."
	}, time.Second, 10*time.Millisecond)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		size int
		ttl  time.Duration
	}{
		{name: "ZeroSize", size: 0, ttl: time.Minute},
		{name: "ZeroTTL", size: 4, ttl: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cache.New(&countingSource{}, tt.size, tt.ttl)
			assert.Error(t, err)
		})
	}
}
