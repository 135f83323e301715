// Package cache keeps recently read profiles in memory so that building an
// owner's request list does not reload the same requesters on every call.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/compostlink/compostlink/internal/account"
)

type Source interface {
	Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*account.Profile, error)
}

// Profiles is an LRU-backed Source. Entries expire after the configured TTL
// so that edits made by another replica eventually show up here. It is safe
// for concurrent use.
type Profiles struct {
	src   Source
	cache *expirable.LRU[uuid.UUID, *account.Profile]
}

func New(src Source, size int, ttl time.Duration) (*Profiles, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}

	return &Profiles{
		src:   src,
		cache: expirable.NewLRU[uuid.UUID, *account.Profile](size, nil, ttl),
	}, nil
}

func (p *Profiles) Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*account.Profile, error) {
	out := make(map[uuid.UUID]*account.Profile, len(ids))

	var missing []uuid.UUID

	for _, id := range ids {
		if profile, ok := p.cache.Get(id); ok {
			out[id] = profile
			continue
		}

		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := p.src.Profiles(ctx, missing)
	if err != nil {
		return nil, err
	}

	for id, profile := range fetched {
		p.cache.Add(id, profile)
		out[id] = profile
	}

	return out, nil
}

// Forget drops a cached profile, e.g. after its account status changed.
func (p *Profiles) Forget(id uuid.UUID) {
	p.cache.Remove(id)
}
