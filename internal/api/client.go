// Package api is the HTTP/JSON client for the planner backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jask/wedplan/internal/domain"
)

// ErrNotFound matches a StatusError carrying HTTP 404.
var ErrNotFound = errors.New("not found")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Op     string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %s: unexpected status %d", e.Op, e.Code)
	}
	return fmt.Sprintf("api: %s: unexpected status %d: %s", e.Op, e.Code, e.Detail)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Client talks to the planner backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client rooted at baseURL (for example
// http://localhost:8001/api). A non-positive timeout disables the
// client-level deadline; callers should then bound calls by context.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "api"),
	}
}

// ProvisionRequest is the payload for creating a user.
type ProvisionRequest struct {
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Phone       string              `json:"phone"`
	Role        domain.Role         `json:"role"`
	Preferences *domain.Preferences `json:"preferences,omitempty"`
}

// ChatRequest is one outgoing chat turn.
type ChatRequest struct {
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the assistant's answer to a turn.
type ChatResponse struct {
	Response      string   `json:"response"`
	SessionID     string   `json:"session_id"`
	Suggestions   []string `json:"suggestions"`
	WebSearchUsed bool     `json:"web_search_used"`
}

// InquiryRequest is the payload for contacting a vendor.
type InquiryRequest struct {
	UserID   string `json:"user_id"`
	VendorID string `json:"vendor_id"`
	Message  string `json:"message"`
}

// Recommendations is the ranked vendor list for a user.
type Recommendations struct {
	Recommendations []domain.Vendor `json:"recommendations"`
	TotalCount      int             `json:"total_count"`
	Category        string          `json:"category"`
}

// ProvisionUser creates the user the client acts as.
func (c *Client) ProvisionUser(ctx context.Context, req ProvisionRequest) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, "provision user", http.MethodPost, "/users", req, &out)
	return out, err
}

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, id string) (domain.User, error) {
	var out domain.User
	err := c.do(ctx, "get user", http.MethodGet, "/users/"+url.PathEscape(id), nil, &out)
	return out, err
}

// ListVendors lists the catalog. An empty category means no filter; any
// other value is sent as-is.
func (c *Client) ListVendors(ctx context.Context, category string) ([]domain.Vendor, error) {
	path := "/vendors"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	var out []domain.Vendor
	if err := c.do(ctx, "list vendors", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVendor fetches one vendor.
func (c *Client) GetVendor(ctx context.Context, id string) (domain.Vendor, error) {
	var out domain.Vendor
	err := c.do(ctx, "get vendor", http.MethodGet, "/vendors/"+url.PathEscape(id), nil, &out)
	return out, err
}

// RegisterVendor submits a normalized vendor record.
func (c *Client) RegisterVendor(ctx context.Context, rec domain.VendorRecord) (domain.Vendor, error) {
	var out domain.Vendor
	err := c.do(ctx, "register vendor", http.MethodPost, "/vendors", rec, &out)
	return out, err
}

// SendChat sends one chat turn.
func (c *Client) SendChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var out ChatResponse
	err := c.do(ctx, "send chat", http.MethodPost, "/chat", req, &out)
	return out, err
}

// SendInquiry records an inquiry to a vendor.
func (c *Client) SendInquiry(ctx context.Context, req InquiryRequest) (domain.Inquiry, error) {
	var out domain.Inquiry
	err := c.do(ctx, "send inquiry", http.MethodPost, "/inquiries", req, &out)
	return out, err
}

// Recommend returns vendors matched to the user's preferences.
func (c *Client) Recommend(ctx context.Context, userID, category string) (Recommendations, error) {
	path := "/recommendations/" + url.PathEscape(userID)
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	var out Recommendations
	err := c.do(ctx, "recommend", http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: %s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: %s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.DebugContext(ctx, "api request", slog.String("op", op), slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: %s: read body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: op, Code: resp.StatusCode, Detail: errorDetail(raw)}
	}

	c.log.DebugContext(ctx, "api response", slog.String("op", op), slog.Int("status", resp.StatusCode), slog.Int("bytes", len(raw)))

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: %s: decode json: %w", op, err)
	}
	return nil
}

// errorDetail extracts {"detail": ...} from an error body. Detail may be a
// string or a structured validation list; anything else is returned trimmed.
func errorDetail(raw []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Detail) == 0 {
		return strings.TrimSpace(string(raw))
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}
	return string(env.Detail)
}
