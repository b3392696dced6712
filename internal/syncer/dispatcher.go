package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
)

// ErrUnsupportedEvent is returned for media/event combinations no handler
// knows how to apply.
var ErrUnsupportedEvent = errors.New("unsupported update event")

// ErrStore marks handler failures raised by the local store rather than by
// the content server or the file system. They abort the pass.
var ErrStore = errors.New("store failure")

type EventHandler interface {
	Handle(ctx context.Context, event *domain.UpdateEvent, log *logger.Logger) error
}

type Dispatcher struct {
	handlers map[domain.MediaType]EventHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[domain.MediaType]EventHandler),
	}
}

func (d *Dispatcher) Register(mediaType domain.MediaType, handler EventHandler) {
	d.handlers[mediaType] = handler
}

func (d *Dispatcher) Dispatch(ctx context.Context, event *domain.UpdateEvent, log *logger.Logger) error {
	handler, ok := d.handlers[event.MediaType]
	if !ok {
		return fmt.Errorf("%w: media type %q", ErrUnsupportedEvent, event.MediaType)
	}
	return handler.Handle(ctx, event, log)
}

func unsupported(event *domain.UpdateEvent) error {
	return fmt.Errorf("%w: %s %s", ErrUnsupportedEvent, event.MediaType, event.EventType)
}

// persist tags store errors with ErrStore. A missing row stays a plain
// event failure so the event is retried on a later pass.
func persist(err error) error {
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}
