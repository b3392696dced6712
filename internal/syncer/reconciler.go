// Package syncer reconciles the local content store with the content
// server's update events.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/storage"
	"github.com/cesargomez89/soundboard/internal/store"
)

// Outcome is what Apply did with one event.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Result counts what one sync pass did.
type Result struct {
	Since    string `json:"since"`
	Received int    `json:"received"`
	Applied  int    `json:"applied"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
	Retried  int    `json:"retried"`
}

func (r *Result) add(o Outcome) {
	switch o {
	case OutcomeApplied:
		r.Applied++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
}

type Reconciler struct {
	Repo       *store.DB
	Server     ContentServer
	Dispatcher *Dispatcher
	Logger     *logger.Logger

	// OnProgress, when set, is called after each event of a pass.
	OnProgress func(done, total int)

	group   singleflight.Group
	mu      sync.Mutex
	current *pass
}

const syncKey = "sync"

// NewReconciler wires the default handlers for sounds, songs, authors and
// music genres. Content files go under layout.
func NewReconciler(repo *store.DB, server ContentServer, layout *storage.Layout, log *logger.Logger) *Reconciler {
	if log == nil {
		log = logger.Default()
	}

	files := &fileFetcher{Server: server, Layout: layout}
	d := NewDispatcher()
	d.Register(domain.MediaTypeSound, &SoundHandler{Repo: repo, Files: files})
	d.Register(domain.MediaTypeSong, &SongHandler{Repo: repo, Files: files})
	d.Register(domain.MediaTypeAuthor, &AuthorHandler{Repo: repo, Server: server})
	d.Register(domain.MediaTypeMusicGenre, &GenreHandler{Repo: repo, Server: server})

	return &Reconciler{
		Repo:       repo,
		Server:     server,
		Dispatcher: d,
		Logger:     log.WithComponent("syncer"),
	}
}

// Apply records a new event and applies it. An event already known locally
// is skipped without touching the store.
func (r *Reconciler) Apply(ctx context.Context, event domain.UpdateEvent) (Outcome, error) {
	exists, err := r.Repo.UpdateEventExists(event.ID)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to check update event: %w", err)
	}
	if exists {
		return OutcomeSkipped, nil
	}

	event.DidSucceed = nil
	if err := r.Repo.InsertUpdateEvent(&event); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return OutcomeSkipped, nil
		}
		return OutcomeFailed, err
	}

	return r.run(ctx, &event)
}

// run dispatches a stored event and records its result and sync log row.
func (r *Reconciler) run(ctx context.Context, event *domain.UpdateEvent) (Outcome, error) {
	log := r.Logger.WithEvent(event.ID, string(event.MediaType))

	handleErr := r.Dispatcher.Dispatch(ctx, event, log)
	if handleErr != nil {
		if err := r.Repo.MarkUpdateEventFailed(event.ID); err != nil {
			return OutcomeFailed, err
		}
		log.Error("Failed to apply update event", "event_type", event.EventType, "content_id", event.ContentID, "error", handleErr)
		r.writeLog(event, domain.SyncLogError, fmt.Sprintf("Failed to apply %s %s %s: %v", event.MediaType, event.ContentID, event.EventType, handleErr))
		if errors.Is(handleErr, ErrStore) {
			return OutcomeFailed, handleErr
		}
		return OutcomeFailed, nil
	}

	if err := r.Repo.MarkUpdateEventSucceeded(event.ID); err != nil {
		return OutcomeFailed, err
	}
	log.Info("Applied update event", "event_type", event.EventType, "content_id", event.ContentID)
	r.writeLog(event, domain.SyncLogSuccess, fmt.Sprintf("Applied %s %s %s", event.MediaType, event.ContentID, event.EventType))
	return OutcomeApplied, nil
}

// writeLog appends an audit row. Failures are logged and dropped.
func (r *Reconciler) writeLog(event *domain.UpdateEvent, logType domain.SyncLogType, description string) {
	entry := &domain.SyncLog{
		LogType:       logType,
		Description:   description,
		UpdateEventID: event.ID,
		MediaType:     event.MediaType,
		ContentID:     event.ContentID,
	}
	if err := r.Repo.InsertSyncLog(entry); err != nil {
		r.Logger.Warn("Failed to write sync log", "event_id", event.ID, "error", err)
	}
}

// Retry re-dispatches every event never attempted or previously failed,
// oldest first.
func (r *Reconciler) Retry(ctx context.Context) (*Result, error) {
	return r.retry(ctx, ctx.Err, nil, r.OnProgress)
}

// retry skips events whose ids are in seen and stops between events once
// stopped returns an error.
func (r *Reconciler) retry(ctx context.Context, stopped func() error, seen map[string]bool, progress func(done, total int)) (*Result, error) {
	events, err := r.Repo.UnsuccessfulUpdateEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to list unsuccessful events: %w", err)
	}

	pending := events[:0]
	for _, e := range events {
		if !seen[e.ID] {
			pending = append(pending, e)
		}
	}

	res := &Result{}
	for i := range pending {
		if err := stopped(); err != nil {
			return res, err
		}
		outcome, err := r.run(ctx, &pending[i])
		if err != nil {
			return res, err
		}
		res.Retried++
		res.add(outcome)
		if progress != nil {
			progress(i+1, len(pending))
		}
	}
	return res, nil
}

// Sync runs one full pass: check the server, fetch events since the last
// known one, apply them in order, then retry leftovers. Concurrent calls
// share the pass already in flight. A caller whose ctx ends gets ctx.Err()
// right away; the pass itself stops between events only once every caller
// has given up, and the last one receives the partial result.
func (r *Reconciler) Sync(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	if r.current == nil {
		r.current = newPass(ctx)
	}
	p := r.current
	c := p.join(ctx)
	r.mu.Unlock()
	defer p.leave(c)

	ch := r.group.DoChan(syncKey, func() (interface{}, error) {
		defer r.finish(p)
		return r.sync(p)
	})

	select {
	case out := <-ch:
		if out.Shared {
			r.Logger.Debug("Joined in-flight sync pass")
		}
		res, _ := out.Val.(*Result)
		return res, out.Err
	case <-ctx.Done():
		if p.err() == nil {
			return nil, ctx.Err()
		}
		out := <-ch
		res, _ := out.Val.(*Result)
		return res, out.Err
	}
}

func (r *Reconciler) finish(p *pass) {
	r.mu.Lock()
	if r.current == p {
		r.current = nil
	}
	r.mu.Unlock()
	p.cancel()
}

func (r *Reconciler) sync(p *pass) (*Result, error) {
	ctx := p.ctx

	if err := r.Server.CheckStatus(ctx); err != nil {
		return nil, fmt.Errorf("content server not reachable: %w", err)
	}

	since, err := r.Repo.DateTimeOfLastUpdate()
	if err != nil {
		return nil, fmt.Errorf("failed to read last update time: %w", err)
	}

	events, err := r.Server.UpdateEvents(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch update events: %w", err)
	}

	res := &Result{Since: since, Received: len(events)}
	seen := make(map[string]bool, len(events))
	r.Logger.Info("Sync pass started", "since", since, "events", len(events))

	for i, event := range events {
		if err := p.err(); err != nil {
			return res, err
		}
		outcome, err := r.Apply(ctx, event)
		if err != nil {
			return res, err
		}
		if outcome != OutcomeSkipped {
			seen[event.ID] = true
		}
		res.add(outcome)
		if r.OnProgress != nil {
			r.OnProgress(i+1, len(events))
		}
	}

	// Events that just failed wait for the next pass.
	retried, err := r.retry(ctx, p.err, seen, nil)
	if retried != nil {
		res.Retried = retried.Retried
		res.Applied += retried.Applied
		res.Failed += retried.Failed
	}
	if err != nil {
		return res, err
	}

	if err := store.NewSettingsRepo(r.Repo).Set(store.SettingLastSyncAt, domain.Now().String()); err != nil {
		r.Logger.Warn("Failed to record sync time", "error", err)
	}

	r.Logger.Info("Sync pass finished",
		"received", res.Received, "applied", res.Applied,
		"skipped", res.Skipped, "failed", res.Failed, "retried", res.Retried)
	return res, nil
}
