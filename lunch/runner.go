// Package lunch runs one daily tick: fetch the menu, format it, post it.
package lunch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sodexo-webhook/menu"
	"sodexo-webhook/message"
)

// MenuFetcher returns the menu for a calendar day. It never fails; a failed
// fetch yields an empty document.
type MenuFetcher interface {
	Fetch(ctx context.Context, day time.Time) menu.Document
}

// MessagePoster delivers a formatted message.
type MessagePoster interface {
	Post(ctx context.Context, content string) error
}

// Runner orchestrates a single tick.
type Runner struct {
	fetcher  MenuFetcher
	poster   MessagePoster
	location *time.Location
	log      *zap.Logger
	now      func() time.Time
}

// NewRunner creates a Runner whose "today" is taken in loc.
func NewRunner(fetcher MenuFetcher, poster MessagePoster, loc *time.Location, log *zap.Logger) *Runner {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		fetcher:  fetcher,
		poster:   poster,
		location: loc,
		log:      log,
		now:      time.Now,
	}
}

// Run executes one tick. The date is read once and shared by the fetch and
// the message header. A post failure is logged and returned; nothing is retried.
func (r *Runner) Run(ctx context.Context) error {
	today := r.now().In(r.location)
	log := r.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("date", today.Format(menu.DateLayout)),
	)
	log.Info("lunch tick starting")

	doc := r.fetcher.Fetch(ctx, today)
	msg := message.Format(doc, today)
	if msg == message.NothingToday {
		log.Info("no courses for today")
	}

	if err := r.poster.Post(ctx, msg); err != nil {
		log.Error("post failed", zap.Error(err))
		return fmt.Errorf("posting lunch message: %w", err)
	}

	log.Info("post ok", zap.Int("length", len(msg)))
	return nil
}
