package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// GeoLookupError is a failure of the third-party geocoding service.
// Callers fall back to a numeric coordinate label; this never blocks a
// user action.
type GeoLookupError struct {
	Op  string
	Err error
}

func (e *GeoLookupError) Error() string {
	return fmt.Sprintf("%s: geocoding failed: %v", e.Op, e.Err)
}

func (e *GeoLookupError) Unwrap() error { return e.Err }

// Place is one forward-search result.
type Place struct {
	Lat         float64
	Lng         float64
	DisplayName string
	Type        string
}

// Nominatim is a client for the OSM Nominatim geocoding API.
// Nominatim's usage policy requires a descriptive User-Agent and at
// most one request per second, so calls are throttled client-side.
type Nominatim struct {
	baseURL     string
	userAgent   string
	searchLimit int
	client      *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

// NewNominatim creates a geocoding client.
func NewNominatim(baseURL, userAgent string, searchLimit int) *Nominatim {
	return &Nominatim{
		baseURL:     baseURL,
		userAgent:   userAgent,
		searchLimit: searchLimit,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// ReverseLookup resolves coordinates to a human-readable display name.
func (g *Nominatim) ReverseLookup(ctx context.Context, lat, lng float64) (string, error) {
	g.throttle()

	u := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%f&lon=%f", g.baseURL, lat, lng)
	var data struct {
		DisplayName string `json:"display_name"`
	}
	if err := g.get(ctx, u, &data); err != nil {
		return "", &GeoLookupError{Op: "reverse", Err: err}
	}
	if data.DisplayName == "" {
		return "", &GeoLookupError{Op: "reverse", Err: fmt.Errorf("no result for %f,%f", lat, lng)}
	}
	return data.DisplayName, nil
}

// Search resolves free text to a ranked list of places.
func (g *Nominatim) Search(ctx context.Context, query string) ([]Place, error) {
	g.throttle()

	u := fmt.Sprintf("%s/search?format=json&limit=%d&q=%s", g.baseURL, g.searchLimit, url.QueryEscape(query))
	// Nominatim serializes coordinates as strings.
	var data []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
		Type        string `json:"type"`
	}
	if err := g.get(ctx, u, &data); err != nil {
		return nil, &GeoLookupError{Op: "search", Err: err}
	}

	places := make([]Place, 0, len(data))
	for _, d := range data {
		lat, err := strconv.ParseFloat(d.Lat, 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(d.Lon, 64)
		if err != nil {
			continue
		}
		places = append(places, Place{Lat: lat, Lng: lng, DisplayName: d.DisplayName, Type: d.Type})
	}
	return places, nil
}

func (g *Nominatim) get(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *Nominatim) throttle() {
	g.mu.Lock()
	elapsed := time.Since(g.lastCall)
	if elapsed < time.Second {
		time.Sleep(time.Second - elapsed)
	}
	g.lastCall = time.Now()
	g.mu.Unlock()
}

// CoordinateLabel is the local fallback when geocoding fails: a plain
// numeric label for the coordinates.
func CoordinateLabel(lat, lng float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lng)
}
