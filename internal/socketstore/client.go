package socketstore

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Options configures the connection.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
}

const connectTimeout = 15 * time.Second

// Dial connects to the service and returns a ready store.
func Dial(ctx context.Context, o Options) (*Store, error) {
	logger := ctxlog.FromContext(ctx).With("store", "socketio", "url", o.URL)
	logger.Info("Connecting to remote store...")

	parsedURL, err := url.Parse(o.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if o.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(o.Namespace, opts)

	s := newStore(func(event string, payload map[string]any) {
		io.Emit(event, payload)
	})
	s.logger = logger
	s.close = func() { io.Disconnect() }

	io.On(types.EventName(replyEvent), func(args ...any) {
		s.handleReply(args...)
	})
	io.On(types.EventName("disconnect"), func(args ...any) {
		logger.Warn("Remote store disconnected.", "reason", args)
		s.failPending(ErrDisconnected)
	})

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		if err == nil {
			err = fmt.Errorf("%v", errs[0])
		}
		logger.Debug("Connection attempt failed", "error", err)
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return s, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", connectTimeout)
	}
}
