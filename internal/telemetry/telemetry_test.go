package telemetry

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFirstGuessPostsEvent(t *testing.T) {
	received := make(chan event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
			return
		}
		var e event
		if err := json.Unmarshal(body, &e); err != nil {
			t.Errorf("unmarshal body: %v", err)
			return
		}
		received <- e
	}))
	defer srv.Close()

	c := New(srv.URL, "install-123", zerolog.Nop())
	c.FirstGuess("CRANE")

	select {
	case e := <-received:
		if e.Event != "first_guess" || e.Word != "CRANE" || e.InstallID != "install-123" {
			t.Fatalf("unexpected event: %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("telemetry event never arrived")
	}
}

func TestDisabledClientIsSilent(t *testing.T) {
	// Must not panic or block.
	var nilClient *Client
	nilClient.FirstGuess("CRANE")

	c := New("", "install-123", zerolog.Nop())
	c.FirstGuess("CRANE")
}

func TestFailureIsSwallowed(t *testing.T) {
	c := New("http://127.0.0.1:1/unreachable", "install-123", zerolog.Nop())
	c.FirstGuess("CRANE")
	// Emission is async; give the goroutine a moment to fail quietly.
	time.Sleep(50 * time.Millisecond)
}
