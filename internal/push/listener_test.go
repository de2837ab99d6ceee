package push

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cityfix-client/internal/models"
	"cityfix-client/internal/state"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// fakePushServer serves one websocket endpoint that writes the given
// frames to every client, then keeps the connection open.
func fakePushServer(t *testing.T, frames []string) string {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/events", func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		// Hold the connection until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/events"
}

func collectEvents(t *testing.T, url string, want int) []state.Event {
	t.Helper()

	events := make(chan state.Event, 32)
	l := NewListener(url, func(ev state.Event) { events <- ev }, 10*time.Millisecond, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	var got []state.Event
	deadline := time.After(3 * time.Second)
	for len(got) < want {
		select {
		case ev := <-events:
			got = append(got, ev)
		case <-deadline:
			t.Fatalf("timed out after %d of %d events", len(got), want)
		}
	}
	return got
}

func TestListenerDecodesEvents(t *testing.T) {
	url := fakePushServer(t, []string{
		`{"event":"new_issue","data":{"id":"a1","type":"pothole","location":"MG Road","lat":12.9,"lng":77.6,"status":"pending","date":"2026-08-01T10:00:00Z"}}`,
		`{"event":"status_updated","data":{"issue_id":"a1","status":"solved","points_awarded":20}}`,
		`{"event":"issue_deleted","data":{"issue_id":"a1"}}`,
		`{"event":"points_updated","data":{"user_id":"u1","points":30,"added":20}}`,
	})

	// connect + the four data events, in delivery order.
	got := collectEvents(t, url, 5)

	require.IsType(t, state.Connected{}, got[0])

	created, ok := got[1].(state.IssueCreated)
	require.True(t, ok)
	assert.Equal(t, "a1", created.Issue.ID)
	assert.Equal(t, models.StatusPending, created.Issue.Status)
	require.True(t, created.Issue.HasCoordinates())

	status, ok := got[2].(state.StatusUpdated)
	require.True(t, ok)
	assert.Equal(t, models.StatusSolved, status.Status)
	assert.Equal(t, 20, status.PointsAwarded)

	deleted, ok := got[3].(state.IssueDeleted)
	require.True(t, ok)
	assert.Equal(t, "a1", deleted.IssueID)

	points, ok := got[4].(state.PointsUpdated)
	require.True(t, ok)
	assert.Equal(t, "u1", points.UserID)
	assert.Equal(t, 30, points.Points)
}

func TestListenerDropsUnknownAndMalformedFrames(t *testing.T) {
	url := fakePushServer(t, []string{
		`{"event":"mystery","data":{}}`,
		`not json at all`,
		`{"event":"new_issue","data":{"type":"no id"}}`,
		`{"event":"issue_deleted","data":{"issue_id":"a1"}}`,
	})

	got := collectEvents(t, url, 2)
	require.IsType(t, state.Connected{}, got[0])
	deleted, ok := got[1].(state.IssueDeleted)
	require.True(t, ok, "only the well-formed frame should come through")
	assert.Equal(t, "a1", deleted.IssueID)
}

func TestListenerStopsOnContextCancel(t *testing.T) {
	url := fakePushServer(t, nil)

	events := make(chan state.Event, 8)
	l := NewListener(url, func(ev state.Event) { events <- ev }, 10*time.Millisecond, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	select {
	case <-events: // Connected
	case <-time.After(3 * time.Second):
		t.Fatal("never connected")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("listener did not stop on cancel")
	}
}

func TestDecodeEventUnknownName(t *testing.T) {
	_, err := decodeEvent("mystery", []byte(`{}`))
	assert.Error(t, err)
}
