// Package store provides session-scoped caching for the visualization
// engine. The core owns no persistence; the cache exists so per-session
// work (legacy conversion, state reconstruction) happens once and is
// reused across step changes within a session.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a session or step has no cached entry.
var ErrNotFound = errors.New("not found")

// Store caches converted step sequences and resolved per-step
// visualization state, keyed by session.
//
// Type parameter S is the converted step type; the engine uses its legacy
// step shape. Implementations must be safe for concurrent use.
type Store[S any] interface {
	// SaveConverted caches a session's fully converted step sequence.
	SaveConverted(ctx context.Context, session string, steps []S) error

	// LoadConverted returns the cached converted sequence, or ErrNotFound.
	LoadConverted(ctx context.Context, session string) ([]S, error)

	// SaveResolved caches the resolved visualization state for one step.
	SaveResolved(ctx context.Context, session string, step int, data map[string]any) error

	// LoadResolved returns the cached resolved state for one step, or
	// ErrNotFound.
	LoadResolved(ctx context.Context, session string, step int) (map[string]any, error)

	// Clear drops everything cached for a session.
	Clear(ctx context.Context, session string) error
}
