// Package session holds the game session model and the stores that own
// sessions between requests.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned for ids the store does not hold.
	ErrNotFound = errors.New("session not found")
	// ErrExists is returned when creating a session whose id is taken.
	ErrExists = errors.New("session already exists")
	// ErrNoChange may be returned by an UpdateFunc to leave the stored
	// session untouched without failing the update.
	ErrNoChange = errors.New("session unchanged")
)

// UpdateFunc mutates a private copy of a session. The copy is committed only
// when the function returns nil.
type UpdateFunc func(s *Session) error

// Store owns every session. Implementations serialize Update calls per
// session id and let different ids proceed in parallel.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, fn UpdateFunc) (*Session, error)
	Delete(ctx context.Context, id string) error
	// EvictIdle removes sessions not updated since cutoff and returns how
	// many were removed.
	EvictIdle(ctx context.Context, cutoff time.Time) (int, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

// Clock returns the current time. Stores take one so tests can pin time.
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
