package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestCustomerChannel(t *testing.T) {
	if got := CustomerChannel(7); got != "customer:7" {
		t.Errorf("CustomerChannel(7) = %q", got)
	}
}

func TestRegisterAndClose(t *testing.T) {
	h := NewHub()
	sub := h.Register(nil, AdminChannel, "customer:1")
	if h.ClientCount(AdminChannel) != 1 || h.ClientCount("customer:1") != 1 {
		t.Fatal("registered client not counted")
	}
	sub.Close()
	if h.ClientCount(AdminChannel) != 0 || h.ClientCount("customer:1") != 0 {
		t.Error("closed client still counted")
	}
}

func TestPublishDeliversToChannel(t *testing.T) {
	h := NewHub()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		h.Register(conn, AdminChannel)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait for the server side to register the connection.
	deadline := time.Now().Add(2 * time.Second)
	for h.ClientCount(AdminChannel) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("connection never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	h.Publish(AdminChannel, Event{Name: "order_created", Data: map[string]any{"order_id": float64(9)}})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Event
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "order_created" || got.Data["order_id"] != float64(9) {
		t.Errorf("unexpected event: %+v", got)
	}

	// Events on other channels do not leak here.
	h.Publish("customer:1", Event{Name: "private"})
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("received an event from a channel the client never joined")
	}
}
