package inspector

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastAndCloseDoNotInterleave(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	var received []Message
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			received = append(received, msg)
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				hub.NotifyReload("app.yaml")
			}
		}()
	}
	time.Sleep(5 * time.Millisecond)
	hub.Close()
	wg.Wait()

	select {
	case <-readDone:
	case <-time.After(2 * time.Second):
		t.Fatal("client was not disconnected")
	}
	assert.Equal(t, 0, hub.ClientCount())
	require.NotEmpty(t, received)
	assert.Equal(t, MessageGoodbye, received[len(received)-1].Type)
	for _, msg := range received[:len(received)-1] {
		assert.Equal(t, Message{Type: MessageReload, File: "app.yaml"}, msg)
	}
}
