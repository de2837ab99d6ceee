package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cityfix-client/internal/gateway"
	"cityfix-client/internal/geo"
	"cityfix-client/internal/notify"
	"cityfix-client/internal/state"

	"github.com/rs/zerolog/log"
)

// ValidationError is a local precondition failure. It blocks the
// action before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Backend limits mirrored locally so rejected submissions fail fast.
const (
	maxImageChars     = 7_000_000 // ~5MB of base64
	imageDataPrefix   = "data:image/"
	maxTypeLen        = 100
	maxLocationLen    = 200
	maxDescriptionLen = 1000
)

// ReportDraft is the in-progress report form.
type ReportDraft struct {
	Type        string
	Location    string
	Description string
	Lat         *float64
	Lng         *float64
	Image       string
}

// ReportController owns the report form: draft state, location picking
// and search, and submission.
type ReportController struct {
	gw       *gateway.Client
	store    *state.Store
	notifier notify.Notifier
	geocoder *geo.Nominatim
	debounce *geo.Debouncer

	draft ReportDraft
}

// NewReportController creates the report form controller.
func NewReportController(gw *gateway.Client, store *state.Store, notifier notify.Notifier, geocoder *geo.Nominatim, searchQuiet time.Duration) *ReportController {
	return &ReportController{
		gw:       gw,
		store:    store,
		notifier: notifier,
		geocoder: geocoder,
		debounce: geo.NewDebouncer(searchQuiet),
	}
}

// Draft returns a copy of the current form state.
func (c *ReportController) Draft() ReportDraft {
	return c.draft
}

// SetFields updates the free-text form fields.
func (c *ReportController) SetFields(issueType, location, description string) {
	c.draft.Type = strings.TrimSpace(issueType)
	c.draft.Location = strings.TrimSpace(location)
	c.draft.Description = strings.TrimSpace(description)
}

// PickLocation places the report pin. The label comes from a reverse
// lookup, falling back to a numeric coordinate label when the
// geocoding service is unavailable.
func (c *ReportController) PickLocation(ctx context.Context, lat, lng float64) {
	c.draft.Lat = &lat
	c.draft.Lng = &lng

	label, err := c.geocoder.ReverseLookup(ctx, lat, lng)
	if err != nil {
		log.Warn().Err(err).Msg("Reverse geocode failed, using coordinates")
		label = geo.CoordinateLabel(lat, lng)
	}
	c.draft.Location = label
}

// SelectPlace applies a search result to the draft.
func (c *ReportController) SelectPlace(p geo.Place) {
	lat, lng := p.Lat, p.Lng
	c.draft.Lat = &lat
	c.draft.Lng = &lng
	c.draft.Location = p.DisplayName
}

// SearchLocation schedules a debounced forward search. Rapid keystrokes
// coalesce: only the query typed before the quiet period fires, and a
// newer call cancels the pending one. done receives the results (or
// nothing on lookup failure, which is logged).
func (c *ReportController) SearchLocation(ctx context.Context, query string, done func([]geo.Place)) {
	query = strings.TrimSpace(query)
	if query == "" {
		c.debounce.Stop()
		return
	}
	c.debounce.Schedule(func() {
		places, err := c.geocoder.Search(ctx, query)
		if err != nil {
			log.Warn().Err(err).Str("query", query).Msg("Location search failed")
			return
		}
		done(places)
	})
}

// AttachImage validates and attaches an encoded image to the draft.
func (c *ReportController) AttachImage(dataURL string) error {
	if !strings.HasPrefix(dataURL, imageDataPrefix) {
		return &ValidationError{Field: "image", Reason: "not an image data URL"}
	}
	if len(dataURL) > maxImageChars {
		return &ValidationError{Field: "image", Reason: "image too large (max 5MB)"}
	}
	c.draft.Image = dataURL
	return nil
}

// ClearImage removes the attached image.
func (c *ReportController) ClearImage() {
	c.draft.Image = ""
}

// Submit validates the draft and sends it. Missing coordinates reject
// locally with a warning and zero network calls. On success the draft
// and pin are cleared; the new issue reaches local state via the push
// channel or the next refetch, never by optimistic insert.
func (c *ReportController) Submit(ctx context.Context) error {
	if err := c.validate(); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) && vErr.Field == "coordinates" {
			c.notifier.Warning("Pick a location on the map before submitting")
		} else {
			c.notifier.Warning(err.Error())
		}
		return err
	}

	req := gateway.SubmitIssueRequest{
		Type:        c.draft.Type,
		Location:    c.draft.Location,
		Lat:         c.draft.Lat,
		Lng:         c.draft.Lng,
		Description: c.draft.Description,
		Image:       c.draft.Image,
		Date:        time.Now().UTC().Format(time.RFC3339),
	}
	user := c.store.SessionUser()
	if user != nil {
		req.UserID = &user.ID
	}

	id, err := c.gw.SubmitIssue(ctx, req)
	if err != nil {
		c.notifier.Danger(submitFailureMessage(err))
		return err
	}

	log.Info().Str("issue_id", id).Str("type", req.Type).Msg("Issue submitted")
	c.draft = ReportDraft{}
	c.notifier.Success("Issue reported. Thank you!")
	if user == nil {
		c.notifier.Info("Log in next time to earn points for your reports")
	}
	return nil
}

func (c *ReportController) validate() error {
	if c.draft.Lat == nil || c.draft.Lng == nil {
		return &ValidationError{Field: "coordinates", Reason: "no location picked"}
	}
	if c.draft.Type == "" || len(c.draft.Type) > maxTypeLen {
		return &ValidationError{Field: "type", Reason: "required, up to 100 characters"}
	}
	if c.draft.Location == "" || len(c.draft.Location) > maxLocationLen {
		return &ValidationError{Field: "location", Reason: "required, up to 200 characters"}
	}
	if c.draft.Description == "" || len(c.draft.Description) > maxDescriptionLen {
		return &ValidationError{Field: "description", Reason: "required, up to 1000 characters"}
	}
	return nil
}

func submitFailureMessage(err error) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return "Could not reach the server. Please try again."
}
