package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"cityfix-client/internal/models"
)

// Client talks to the CityFix REST API. Every operation returns the
// parsed success payload or a *NetworkError / *APIError; nothing is
// surfaced to the user here, callers decide messaging per call site.
type Client struct {
	baseURL    string
	adminPass  string
	httpClient *http.Client
}

// New creates a gateway client. adminPass is sent as the
// X-Admin-Password header on admin-gated operations only.
func New(baseURL, adminPass string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		adminPass:  adminPass,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListIssues fetches the full issue collection, newest first.
func (c *Client) ListIssues(ctx context.Context) ([]models.Issue, error) {
	var issues []models.Issue
	if err := c.do(ctx, http.MethodGet, "/api/issues", nil, false, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Leaderboard fetches the top users in score-descending order.
func (c *Client) Leaderboard(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, false, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListRewards fetches the reward catalog.
func (c *Client) ListRewards(ctx context.Context) ([]models.Reward, error) {
	var rewards []models.Reward
	if err := c.do(ctx, http.MethodGet, "/api/rewards", nil, false, &rewards); err != nil {
		return nil, err
	}
	return rewards, nil
}

// GetUser fetches a single user's canonical record.
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	path := "/api/users/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, false, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserRewards fetches a user's redeemed rewards, newest first.
func (c *Client) UserRewards(ctx context.Context, userID string) ([]models.RedeemedReward, error) {
	var rewards []models.RedeemedReward
	path := "/api/users/" + url.PathEscape(userID) + "/rewards"
	if err := c.do(ctx, http.MethodGet, path, nil, false, &rewards); err != nil {
		return nil, err
	}
	return rewards, nil
}

// AdminStats fetches the aggregate counters for the admin dashboard.
func (c *Client) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, true, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminUsers fetches all users for the admin table.
func (c *Client) AdminUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, true, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SubmitIssueRequest is the payload for a new report. Coordinates and
// image are optional on the wire; the form controller enforces its own
// stricter rules before calling.
type SubmitIssueRequest struct {
	UserID      *string  `json:"user_id,omitempty"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Description string   `json:"description"`
	Image       string   `json:"image,omitempty"`
	Date        string   `json:"date"`
}

// SubmitIssue creates a new issue and returns its server-assigned id.
// The local collection is not touched here; the issue arrives via the
// push channel or the next refetch.
func (c *Client) SubmitIssue(ctx context.Context, req SubmitIssueRequest) (string, error) {
	var resp struct {
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/issues", req, false, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// UpdateStatus transitions an issue's status (admin only) and returns
// the points awarded by the transition.
func (c *Client) UpdateStatus(ctx context.Context, issueID string, status models.Status) (int, error) {
	body := map[string]models.Status{"status": status}
	var resp struct {
		Message       string `json:"message"`
		PointsAwarded int    `json:"points_awarded"`
	}
	path := "/api/issues/" + url.PathEscape(issueID) + "/status"
	if err := c.do(ctx, http.MethodPut, path, body, true, &resp); err != nil {
		return 0, err
	}
	return resp.PointsAwarded, nil
}

// DeleteIssue removes an issue (admin only).
func (c *Client) DeleteIssue(ctx context.Context, issueID string) error {
	path := "/api/issues/" + url.PathEscape(issueID)
	return c.do(ctx, http.MethodDelete, path, nil, true, nil)
}

// GiveReward redeems a reward for a user (admin only) and returns the
// user's new point balance.
func (c *Client) GiveReward(ctx context.Context, userID, rewardID string) (int, error) {
	body := map[string]string{"user_id": userID, "reward_id": rewardID}
	var resp struct {
		Message   string `json:"message"`
		NewPoints int    `json:"new_points"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/give-reward", body, true, &resp); err != nil {
		return 0, err
	}
	return resp.NewPoints, nil
}

type authResponse struct {
	Message string             `json:"message"`
	User    models.SessionUser `json:"user"`
}

// Login authenticates with email and password and returns the user
// record to remember for the session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.SessionUser, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, false, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Register creates an account and returns the new user record.
func (c *Client) Register(ctx context.Context, username, email, password string) (*models.SessionUser, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, false, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// do performs one request/response cycle and normalizes failures into
// the gateway error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body any, admin bool, out any) error {
	op := method + " " + path

	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("%s: failed to encode request body: %w", op, err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("X-Admin-Password", c.adminPass)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
