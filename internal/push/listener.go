package push

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cityfix-client/internal/models"
	"cityfix-client/internal/state"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Dispatcher receives decoded events in delivery order. Every frame is
// dispatched before the next is read, so apply order equals delivery
// order.
type Dispatcher func(state.Event)

// frame is the wire shape of a push message.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Listener maintains one long-lived connection to the push channel and
// translates each named server event into a state event. Reconnection
// is handled here with capped exponential backoff; redelivery tolerance
// comes from the reducer's idempotence, so the listener never filters.
type Listener struct {
	url        string
	dialer     *websocket.Dialer
	dispatch   Dispatcher
	backoffMin time.Duration
	backoffMax time.Duration
}

// NewListener creates a listener for the given websocket URL.
func NewListener(url string, dispatch Dispatcher, backoffMin, backoffMax time.Duration) *Listener {
	return &Listener{
		url:        url,
		dialer:     websocket.DefaultDialer,
		dispatch:   dispatch,
		backoffMin: backoffMin,
		backoffMax: backoffMax,
	}
}

// Run connects and reads until ctx is canceled, reconnecting after
// failures. Blocks; run it in its own goroutine.
func (l *Listener) Run(ctx context.Context) {
	backoff := l.backoffMin
	for {
		if err := l.connectAndRead(ctx); err != nil {
			log.Error().Err(err).Str("url", l.url).Msg("Push channel connection lost")
		}
		if ctx.Err() != nil {
			return
		}

		l.dispatch(state.Disconnected{})

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > l.backoffMax {
			backoff = l.backoffMax
		}
	}
}

func (l *Listener) connectAndRead(ctx context.Context) error {
	conn, _, err := l.dialer.DialContext(ctx, l.url, nil)
	if err != nil {
		return fmt.Errorf("failed to dial push channel: %w", err)
	}
	defer conn.Close()

	log.Info().Str("url", l.url).Msg("Push channel connected")
	l.dispatch(state.Connected{})

	// Unblock ReadMessage when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("read failed: %w", err)
			}
			return nil
		}

		var f frame
		if err := json.Unmarshal(messageBytes, &f); err != nil {
			log.Error().Err(err).Msg("Failed to parse push frame")
			continue
		}

		ev, err := decodeEvent(f.Event, f.Data)
		if err != nil {
			log.Warn().Err(err).Str("event", f.Event).Msg("Dropping push event")
			continue
		}
		l.dispatch(ev)
	}
}

// decodeEvent maps a named server event onto the typed event union.
func decodeEvent(name string, data json.RawMessage) (state.Event, error) {
	switch name {
	case "new_issue":
		var issue models.Issue
		if err := json.Unmarshal(data, &issue); err != nil {
			return nil, fmt.Errorf("failed to decode new_issue: %w", err)
		}
		if issue.ID == "" {
			return nil, fmt.Errorf("new_issue without an id")
		}
		return state.IssueCreated{Issue: issue}, nil

	case "status_updated":
		var ev state.StatusUpdated
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("failed to decode status_updated: %w", err)
		}
		return ev, nil

	case "issue_deleted":
		var ev state.IssueDeleted
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("failed to decode issue_deleted: %w", err)
		}
		return ev, nil

	case "points_updated":
		var ev state.PointsUpdated
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, fmt.Errorf("failed to decode points_updated: %w", err)
		}
		return ev, nil
	}
	return nil, fmt.Errorf("unknown event %q", name)
}
