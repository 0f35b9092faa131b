package monitor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"encoderctl/encoder"
)

func TestStatusHandler(t *testing.T) {
	m := newTestMonitor(nil)
	m.Handle(report(4, 140, encoder.EventIncrease))
	srv := httptest.NewServer(NewServer(m).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/status")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if st.Reports != 1 || st.Last == nil || st.Last.Value != "140" {
		t.Errorf("Unexpected status %+v", st)
	}

	post, err := http.Post(srv.URL+"/api/status", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	post.Body.Close()
	if post.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 for POST, got %d", post.StatusCode)
	}
}

func TestStatusSocket(t *testing.T) {
	m := newTestMonitor(nil)
	m.Handle(report(1, 110, encoder.EventIncrease))
	srv := httptest.NewServer(NewServer(m).Router())
	defer srv.Close()

	var dialer websocket.Dialer
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first Sample
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if first.Seq != 1 {
		t.Errorf("Expected the latest sample on connect, got %+v", first)
	}

	// The handler subscribes before sending the first sample, so this one
	// is delivered through the subscription.
	m.Handle(report(2, 120, encoder.EventIncrease))
	var next Sample
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if next.Seq != 2 || next.Value != "120" || next.Event != "up" {
		t.Errorf("Unexpected sample %+v", next)
	}
}
