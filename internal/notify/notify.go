// Package notify carries change notifications for committed mutations. Every
// change is scoped to a single (entityType, id) pair so collaborators can
// subscribe to exactly the records they care about.
package notify

import (
	"context"
	"errors"
	"time"
)

// Op describes what happened to a record.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// Change identifies one committed mutation. It carries no payload; consumers
// re-read the record if they need its current state.
type Change struct {
	EntityType string    `json:"entityType"`
	ID         string    `json:"id"`
	Op         Op        `json:"op"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers change notifications. Publish is called after the
// mutation is committed and outside any account lock, so implementations may
// block on I/O.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
}

// Nop discards every change.
type Nop struct{}

func (Nop) Publish(ctx context.Context, change Change) error { return nil }

// Multi fans a change out to several publishers and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, change Change) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, change); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
