package syncer

import (
	"context"
	"sync"
)

// pass is the sync pass in flight and the callers waiting on it. It keeps
// running while at least one caller still wants the result.
type pass struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	callers map[*caller]struct{}
}

type caller struct {
	ctx  context.Context
	stop func() bool
}

// newPass detaches from ctx's cancellation but keeps its values.
func newPass(ctx context.Context) *pass {
	passCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	return &pass{
		ctx:     passCtx,
		cancel:  cancel,
		callers: make(map[*caller]struct{}),
	}
}

func (p *pass) join(ctx context.Context) *caller {
	c := &caller{ctx: ctx}
	p.mu.Lock()
	p.callers[c] = struct{}{}
	p.mu.Unlock()

	c.stop = context.AfterFunc(ctx, func() {
		if p.err() != nil {
			p.cancel()
		}
	})
	return c
}

func (p *pass) leave(c *caller) {
	c.stop()
	p.mu.Lock()
	delete(p.callers, c)
	p.mu.Unlock()
}

// err returns a caller's context error once every caller is done, nil
// while any of them is still waiting.
func (p *pass) err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	for c := range p.callers {
		if err = c.ctx.Err(); err == nil {
			return nil
		}
	}
	return err
}
