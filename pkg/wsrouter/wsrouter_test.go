package wsrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seekInput struct {
	Time float64 `json:"time"`
}

func TestDispatchDecodesPayload(t *testing.T) {
	r := New()

	var got seekInput
	Handle(r, "SEEK", func(_ context.Context, _ *websocket.Conn, input seekInput) error {
		got = input
		return nil
	})

	err := r.Dispatch(context.Background(), nil, "SEEK", json.RawMessage(`{"time":12.5}`))
	require.NoError(t, err)
	assert.Equal(t, 12.5, got.Time)
}

func TestDispatchEmptyPayload(t *testing.T) {
	r := New()

	called := false
	Handle(r, "TOGGLE", func(_ context.Context, _ *websocket.Conn, input struct{}) error {
		called = true
		return nil
	})

	require.NoError(t, r.Dispatch(context.Background(), nil, "TOGGLE", nil))
	require.NoError(t, r.Dispatch(context.Background(), nil, "TOGGLE", json.RawMessage("null")))
	assert.True(t, called)
}

func TestDispatchUnknownType(t *testing.T) {
	err := New().Dispatch(context.Background(), nil, "NOPE", nil)
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestDispatchInvalidPayload(t *testing.T) {
	r := New()
	Handle(r, "SEEK", func(context.Context, *websocket.Conn, seekInput) error { return nil })

	err := r.Dispatch(context.Background(), nil, "SEEK", json.RawMessage(`{"time":"soon"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestMiddlewareOrderAndMessageType(t *testing.T) {
	r := New()

	var trace []string
	mw := func(name string) Middleware {
		return func(next HandlerFunc[any]) HandlerFunc[any] {
			return func(ctx context.Context, conn *websocket.Conn, input any) error {
				trace = append(trace, name+":"+GetMessageTypeFromCtx(ctx))
				return next(ctx, conn, input)
			}
		}
	}
	r.Use(mw("outer"), mw("inner"))

	Handle(r, "SEEK", func(_ context.Context, _ *websocket.Conn, input seekInput) error {
		trace = append(trace, "handler")
		return nil
	})

	require.NoError(t, r.Dispatch(context.Background(), nil, "SEEK", nil))
	assert.Equal(t, []string{"outer:SEEK", "inner:SEEK", "handler"}, trace)
}

func TestServeConnRoutesAndReportsErrors(t *testing.T) {
	r := New()

	var (
		mu     sync.Mutex
		seeks  []float64
		errs   []error
		errSig = make(chan struct{}, 4)
	)
	Handle(r, "SEEK", func(_ context.Context, conn *websocket.Conn, input seekInput) error {
		mu.Lock()
		seeks = append(seeks, input.Time)
		mu.Unlock()
		return conn.WriteJSON(map[string]any{"type": "ACK"})
	})
	r.OnError(func(_ context.Context, _ *websocket.Conn, err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
		errSig <- struct{}{}
	})

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		_ = r.ServeConn(req.Context(), conn)
	}))
	defer server.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, client.WriteJSON(map[string]any{"type": "UNKNOWN"}))
	require.NoError(t, client.WriteJSON(map[string]any{"type": "SEEK", "payload": map[string]any{"time": 3}}))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ack map[string]any
	require.NoError(t, client.ReadJSON(&ack))
	assert.Equal(t, "ACK", ack["type"])

	for i := 0; i < 2; i++ {
		select {
		case <-errSig:
		case <-time.After(2 * time.Second):
			t.Fatal("expected error callback")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []float64{3}, seeks)
	require.Len(t, errs, 2)
	assert.True(t, errors.Is(errs[0], ErrInvalidPayload))
	assert.True(t, errors.Is(errs[1], ErrUnknownMessageType))
}
