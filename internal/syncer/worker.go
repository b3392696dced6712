package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/logger"
)

// ShareFlusher uploads locally recorded shares.
type ShareFlusher interface {
	SendPending(ctx context.Context) (int, error)
}

// Worker runs sync passes on an interval and on demand.
type Worker struct {
	Reconciler *Reconciler
	Shares     ShareFlusher
	Interval   time.Duration
	Logger     *logger.Logger

	trigger chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu   sync.Mutex
	last PassStatus
}

// PassStatus describes the most recent pass.
type PassStatus struct {
	Result *Result
	Err    error
	At     time.Time
}

func NewWorker(rec *Reconciler, shares ShareFlusher, interval time.Duration, log *logger.Logger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	if log == nil {
		log = logger.Default()
	}
	if interval <= 0 {
		interval = constants.DefaultSyncInterval
	}

	return &Worker{
		Reconciler: rec,
		Shares:     shares,
		Interval:   interval,
		Logger:     log.WithComponent("sync-worker"),
		trigger:    make(chan struct{}, 1),
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (w *Worker) Start() {
	w.Logger.Info("Starting sync worker", "interval", w.Interval)
	w.wg.Add(1)
	go w.loop()
}

func (w *Worker) Stop() {
	w.Logger.Info("Stopping sync worker")
	w.cancel()
	w.wg.Wait()
}

// Trigger asks for a pass as soon as possible. Requests made while one is
// already pending are merged.
func (w *Worker) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Worker) LastPass() PassStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

func (w *Worker) loop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	w.runPass()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.runPass()
		case <-w.trigger:
			w.runPass()
		}
	}
}

func (w *Worker) runPass() {
	defer func() {
		if r := recover(); r != nil {
			w.Logger.Error("Panic in sync pass", "panic", r)
			w.mu.Lock()
			w.last = PassStatus{Err: fmt.Errorf("sync pass panicked: %v", r), At: time.Now()}
			w.mu.Unlock()
		}
	}()

	res, err := w.Reconciler.Sync(w.ctx)

	w.mu.Lock()
	w.last = PassStatus{Result: res, Err: err, At: time.Now()}
	w.mu.Unlock()

	if err != nil {
		if w.ctx.Err() != nil {
			return
		}
		w.Logger.Warn("Sync pass failed", "error", err)
	}

	if w.Shares == nil {
		return
	}
	if _, err := w.Shares.SendPending(w.ctx); err != nil && w.ctx.Err() == nil {
		w.Logger.Warn("Failed to send share logs", "error", err)
	}
}
