package review

import (
	"context"
	"time"
)

// Event describes a newly submitted review for operator notification.
type Event struct {
	ReviewID  string
	Name      string
	Email     string
	Rating    int
	Review    string
	CreatedAt time.Time
}

// Notifier is told about every accepted submission. Failures never
// affect the submission outcome.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, event Event) error

func (f NotifierFunc) Notify(ctx context.Context, event Event) error {
	return f(ctx, event)
}
