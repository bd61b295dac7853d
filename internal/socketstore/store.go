package socketstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/sheetgrid/internal/persist"
	"github.com/specialistvlad/sheetgrid/internal/record"
)

const (
	createEvent = "sheet:create"
	saveEvent   = "sheet:save"
	removeEvent = "sheet:remove"
	replyEvent  = "sheet:reply"
)

var (
	// ErrDisconnected fails calls that were waiting when the connection dropped.
	ErrDisconnected = errors.New("remote store disconnected")
	// ErrRemote wraps error messages sent by the service.
	ErrRemote = errors.New("remote store error")
)

type reply struct {
	fields map[string]any
	err    error
}

// Store is a Socket.IO backed persist.Store.
type Store struct {
	emit   func(event string, payload map[string]any)
	close  func()
	logger *slog.Logger

	seq     atomic.Uint64
	mu      sync.Mutex
	pending map[string]chan reply
}

var _ persist.Store = (*Store)(nil)

func newStore(emit func(event string, payload map[string]any)) *Store {
	return &Store{
		emit:    emit,
		close:   func() {},
		logger:  slog.Default(),
		pending: make(map[string]chan reply),
	}
}

// Close disconnects and fails all waiting calls.
func (s *Store) Close() error {
	s.close()
	s.failPending(ErrDisconnected)
	return nil
}

func (s *Store) Create(ctx context.Context) (*record.Record, error) {
	fields, err := s.call(ctx, createEvent, nil)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, nil
	}
	return record.New(fields), nil
}

func (s *Store) Save(ctx context.Context, r *record.Record) (*record.Record, error) {
	fields, err := s.call(ctx, saveEvent, r)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, nil
	}
	return record.New(fields), nil
}

func (s *Store) Remove(ctx context.Context, r *record.Record) error {
	_, err := s.call(ctx, removeEvent, r)
	return err
}

func (s *Store) call(ctx context.Context, event string, r *record.Record) (map[string]any, error) {
	req := strconv.FormatUint(s.seq.Add(1), 10)
	ch := make(chan reply, 1)
	s.mu.Lock()
	s.pending[req] = ch
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.pending, req)
		s.mu.Unlock()
	}()

	payload := map[string]any{"req": req}
	if r != nil {
		payload["record"] = r.Fields()
	}
	s.logger.Debug("Emitting request", "event", event, "req", req, "id", r.ID())
	s.emit(event, payload)

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s %s: %w", event, req, ctx.Err())
	case rep := <-ch:
		if rep.err != nil {
			return nil, fmt.Errorf("%s: %w", event, rep.err)
		}
		return rep.fields, nil
	}
}

func (s *Store) handleReply(args ...any) {
	if len(args) == 0 {
		s.logger.Warn("Ignoring empty reply")
		return
	}
	msg, ok := args[0].(map[string]any)
	if !ok {
		s.logger.Warn("Ignoring malformed reply", "type", fmt.Sprintf("%T", args[0]))
		return
	}
	req := fmt.Sprint(msg["req"])

	var rep reply
	if text, ok := msg["error"].(string); ok && text != "" {
		rep.err = fmt.Errorf("%w: %s", ErrRemote, text)
	} else if fields, ok := msg["record"].(map[string]any); ok {
		rep.fields = fields
	}

	s.mu.Lock()
	ch, ok := s.pending[req]
	delete(s.pending, req)
	s.mu.Unlock()
	if !ok {
		s.logger.Warn("Reply for unknown request", "req", req)
		return
	}
	ch <- rep
}

func (s *Store) failPending(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for req, ch := range s.pending {
		ch <- reply{err: err}
		delete(s.pending, req)
	}
}
