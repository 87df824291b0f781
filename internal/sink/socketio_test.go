package sink

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentRelay accepts TCP connections and never answers, so a socket.io
// handshake against it never completes.
func silentRelay(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()

	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})
	return "http://" + ln.Addr().String()
}

func TestDialSocketIO_Timeout(t *testing.T) {
	start := time.Now()
	_, err := DialSocketIO(context.Background(), SocketIOConfig{
		URL:            silentRelay(t),
		ConnectTimeout: 200 * time.Millisecond,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out after 200ms waiting for socket.io connection")
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestDialSocketIO_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DialSocketIO(ctx, SocketIOConfig{
		URL:            silentRelay(t),
		ConnectTimeout: 5 * time.Second,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDialSocketIO_NoRelay(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = DialSocketIO(context.Background(), SocketIOConfig{
		URL:            "http://" + addr,
		ConnectTimeout: 2 * time.Second,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "socket.io")
}

func TestDialSocketIO_BadURL(t *testing.T) {
	_, err := DialSocketIO(context.Background(), SocketIOConfig{URL: "://relay"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse URL")
}

func TestSocketIO_SubmitEmitsPayload(t *testing.T) {
	var events []string
	var payloads []any
	disconnected := false
	s := &SocketIO{
		emit: func(event string, args ...any) {
			events = append(events, event)
			payloads = append(payloads, args...)
		},
		disconnect: func() { disconnected = true },
		event:      DefaultSubmitEvent,
	}

	require.NoError(t, s.Submit(context.Background(), sampleJob()))
	require.Equal(t, []string{"submit"}, events)
	require.Len(t, payloads, 1)
	assert.Equal(t, Payload(sampleJob()), payloads[0])

	s.disconnected.Store(true)
	err := s.Submit(context.Background(), sampleJob())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relay connection lost")
	assert.Len(t, events, 1, "nothing is emitted once the relay is gone")

	require.NoError(t, s.Close())
	assert.True(t, disconnected)
}
