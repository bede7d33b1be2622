package niriwindows

import (
	"codeberg.org/miketth/niriwindows/pkg/niri"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"strings"
)

// Board owns the topology state and keeps the bar in sync with it.
type Board struct {
	state *State
	icon  string
	scope Scope

	listener EventListener
	sink     Sink
	cache    StatusCache
	log      *zap.SugaredLogger

	// displayed is set once anything reached the sink.
	displayed bool
}

func NewBoard(
	listener EventListener,
	sink Sink,
	cache StatusCache,
	icon string,
	scope Scope,
	log *zap.SugaredLogger,
) *Board {
	return &Board{
		state:    NewState(),
		icon:     icon,
		scope:    scope,
		listener: listener,
		sink:     sink,
		cache:    cache,
		log:      log,
	}
}

func (b *Board) State() *State {
	return b.state
}

// ProcessLines replays the cached status, then applies events one at a time
// until the context is done or the stream fails.
func (b *Board) ProcessLines(ctx context.Context) error {
	if err := b.replayCached(); err != nil {
		return fmt.Errorf("replay cached status: %w", err)
	}

	lines := make(chan string)
	errCh := make(chan error, 1)
	go b.readLines(ctx, lines, errCh)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-lines:
			err := b.processLine(line)
			if err != nil {
				return fmt.Errorf("process line: %w", err)
			}
		case err := <-errCh:
			return fmt.Errorf("get line: %w", err)
		}
	}
}

func (b *Board) readLines(ctx context.Context, lines chan<- string, errCh chan<- error) {
	for {
		line, err := b.listener.ReadLine()
		if err != nil {
			errCh <- err
			return
		}

		select {
		case lines <- line:
		case <-ctx.Done():
			return
		}
	}
}

func (b *Board) replayCached() error {
	status, ok, err := b.cache.LastStatus()
	if err != nil {
		b.log.Warnw("could not load cached status", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	if err := b.sink.WriteStatus(status); err != nil {
		return err
	}
	b.displayed = true
	return nil
}

func (b *Board) processLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	ev, err := niri.DecodeEvent([]byte(line))
	if err != nil {
		b.log.Warnw("skipping malformed event", "line", line, "error", err)
		return nil
	}

	relevant, err := b.state.Apply(ev)
	if err != nil {
		b.log.Warnw("skipping event", "kind", ev.Kind(), "error", err)
		return nil
	}

	b.log.Debugw("applied event", "kind", ev.Kind(), "relevant", relevant)
	if !relevant {
		return nil
	}

	b.log.Debugf("state:\n%s", b.state)
	return b.display()
}

func (b *Board) display() error {
	status, err := b.state.Project(b.icon, b.scope)
	switch {
	case errors.Is(err, ErrUnknownWorkspace), errors.Is(err, ErrUnknownOutput):
		if !b.displayed {
			b.log.Debugw("nothing to display yet", "error", err)
			return nil
		}
		// The scope went away, the bar must not keep its old windows.
		b.log.Debugw("clearing status", "error", err)
		status = Status{}
	case err != nil:
		return fmt.Errorf("project state: %w", err)
	}

	if err := b.sink.WriteStatus(status); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	b.displayed = true

	if err := b.cache.SaveStatus(status); err != nil {
		b.log.Warnw("could not cache status", "error", err)
	}

	return nil
}
