// Package telemetry posts best-effort analytics events.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const requestTimeout = 3 * time.Second

// Client emits fire-and-forget events to a configured endpoint. A nil client
// or an empty endpoint disables emission entirely.
type Client struct {
	endpoint  string
	installID string
	client    *http.Client
	log       zerolog.Logger
}

type event struct {
	Event     string    `json:"event"`
	Word      string    `json:"word,omitempty"`
	InstallID string    `json:"installId"`
	At        time.Time `json:"at"`
}

// New builds a telemetry client. Endpoint may be empty to disable.
func New(endpoint, installID string, log zerolog.Logger) *Client {
	return &Client{
		endpoint:  endpoint,
		installID: installID,
		client:    &http.Client{Timeout: requestTimeout},
		log:       log,
	}
}

// FirstGuess emits the once-per-game first-guess event asynchronously.
// Failures are logged and otherwise ignored.
func (c *Client) FirstGuess(word string) {
	c.emit(event{Event: "first_guess", Word: word})
}

func (c *Client) emit(e event) {
	if c == nil || c.endpoint == "" {
		return
	}
	e.InstallID = c.installID
	e.At = time.Now().UTC()
	go func() {
		if err := c.post(e); err != nil {
			c.log.Warn().Err(err).Str("event", e.Event).Msg("telemetry event dropped")
		}
	}()
}

func (c *Client) post(e event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	if cerr := resp.Body.Close(); cerr != nil {
		// Best-effort body close.
		_ = cerr
	}
	return nil
}
