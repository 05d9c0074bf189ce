package wsrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
)

var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrInvalidPayload     = errors.New("invalid payload")
)

type message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type HandlerFunc[T any] func(ctx context.Context, conn *websocket.Conn, input T) error

type Middleware func(next HandlerFunc[any]) HandlerFunc[any]

type ErrorHandler func(ctx context.Context, conn *websocket.Conn, err error)

type route struct {
	decode func(json.RawMessage) (any, error)
	handle HandlerFunc[any]
}

type WSRouter struct {
	routes      map[string]route
	middlewares []Middleware
	onError     ErrorHandler
}

func New() *WSRouter {
	return &WSRouter{routes: make(map[string]route)}
}

// Use appends middlewares. The first one registered runs outermost.
func (r *WSRouter) Use(mws ...Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

// OnError sets the callback receiving handler and decoding errors. Without
// one, errors are dropped and the connection keeps being served.
func (r *WSRouter) OnError(fn ErrorHandler) {
	r.onError = fn
}

// Handle registers handler for messageType. The payload is decoded into T
// before middlewares run; an absent or null payload leaves T at its zero
// value.
func Handle[T any](r *WSRouter, messageType string, handler HandlerFunc[T]) {
	r.routes[messageType] = route{
		decode: func(raw json.RawMessage) (any, error) {
			var input T
			if len(raw) == 0 || string(raw) == "null" {
				return input, nil
			}
			if err := json.Unmarshal(raw, &input); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
			}
			return input, nil
		},
		handle: func(ctx context.Context, conn *websocket.Conn, input any) error {
			return handler(ctx, conn, input.(T))
		},
	}
}

// Dispatch routes a single message.
func (r *WSRouter) Dispatch(ctx context.Context, conn *websocket.Conn, messageType string, payload json.RawMessage) error {
	rt, ok := r.routes[messageType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMessageType, messageType)
	}

	ctx = context.WithValue(ctx, messageTypeKey, messageType)

	input, err := rt.decode(payload)
	if err != nil {
		return err
	}

	h := rt.handle
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}

	return h(ctx, conn, input)
}

// ServeConn reads messages until the connection fails or ctx is done. The
// connection is closed on return.
func (r *WSRouter) ServeConn(ctx context.Context, conn *websocket.Conn) error {
	done := make(chan struct{})
	defer close(done)
	defer conn.Close()

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			r.reportError(ctx, conn, fmt.Errorf("%w: %w", ErrInvalidPayload, err))
			continue
		}

		if err := r.Dispatch(ctx, conn, msg.Type, msg.Payload); err != nil {
			r.reportError(ctx, conn, err)
		}
	}
}

func (r *WSRouter) reportError(ctx context.Context, conn *websocket.Conn, err error) {
	if r.onError != nil {
		r.onError(ctx, conn, err)
	}
}
