// Package api is the HTTP client for the inventory backend. Every request
// carries a bearer token when one is stored and a fresh request id; bodies
// are JSON both ways. There are no retries: a failed request surfaces to
// the caller immediately.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/martinsuchenak/lictrack/internal/log"
	"github.com/martinsuchenak/lictrack/internal/model"
)

// TokenSource supplies the bearer token for authenticated requests. An
// error or empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource wrapping a fixed token string.
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

// StatusError is a non-2xx backend response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	se, ok := err.(*StatusError)
	return ok && se.Code == code
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// New creates a client for the backend at baseURL. tokens may be nil for
// an unauthenticated client.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, err := c.tokens.Token(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	log.Debug("API request", "method", method, "path", path, "request_id", req.Header.Get("X-Request-Id"))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Warn("API request failed", "method", method, "path", path, "status", resp.Status)
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// download streams a binary response body to w.
func (c *Client) download(ctx context.Context, path string, query url.Values, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}

// --- Auth ---

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", nil, req, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", nil, body, nil)
}

// --- Devices ---

func (c *Client) Devices(ctx context.Context, page, size int) (model.Page[model.Device], error) {
	var out model.Page[model.Device]
	err := c.do(ctx, http.MethodGet, "/devices", pageQuery(page, size), nil, &out)
	return out, err
}

func (c *Client) Device(ctx context.Context, id string) (*model.Device, error) {
	var out model.Device
	if err := c.do(ctx, http.MethodGet, "/devices/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDevice(ctx context.Context, d *model.Device) error {
	return c.do(ctx, http.MethodPost, "/devices", nil, d, nil)
}

func (c *Client) UpdateDevice(ctx context.Context, d *model.Device) error {
	return c.do(ctx, http.MethodPut, "/devices/"+url.PathEscape(d.DeviceID), nil, d, nil)
}

func (c *Client) DeleteDevice(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/devices/"+url.PathEscape(id), nil, nil, nil)
}

// --- Licenses ---

// Licenses fetches a license page, optionally filtered by vendor.
func (c *Client) Licenses(ctx context.Context, page, size int, vendorID string) (model.Page[model.License], error) {
	q := pageQuery(page, size)
	if vendorID != "" {
		q.Set("vendorId", vendorID)
	}
	var out model.Page[model.License]
	err := c.do(ctx, http.MethodGet, "/licenses", q, nil, &out)
	return out, err
}

func (c *Client) License(ctx context.Context, key string) (*model.License, error) {
	var out model.License
	if err := c.do(ctx, http.MethodGet, "/licenses/"+url.PathEscape(key), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateLicense(ctx context.Context, l *model.License) error {
	return c.do(ctx, http.MethodPost, "/licenses", nil, l, nil)
}

func (c *Client) UpdateLicense(ctx context.Context, l *model.License) error {
	return c.do(ctx, http.MethodPut, "/licenses/"+url.PathEscape(l.LicenseKey), nil, l, nil)
}

func (c *Client) DeleteLicense(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodDelete, "/licenses/"+url.PathEscape(key), nil, nil, nil)
}

// --- Assignments ---

func (c *Client) Assignments(ctx context.Context) ([]model.Assignment, error) {
	var out []model.Assignment
	err := c.do(ctx, http.MethodGet, "/assignments", nil, nil, &out)
	return out, err
}

func (c *Client) AssignmentsByDevice(ctx context.Context, deviceID string) ([]model.Assignment, error) {
	var out []model.Assignment
	err := c.do(ctx, http.MethodGet, "/assignments/by-device/"+url.PathEscape(deviceID), nil, nil, &out)
	return out, err
}

func (c *Client) AssignmentsByLicense(ctx context.Context, licenseKey string) ([]model.Assignment, error) {
	var out []model.Assignment
	err := c.do(ctx, http.MethodGet, "/assignments/by-license/"+url.PathEscape(licenseKey), nil, nil, &out)
	return out, err
}

func (c *Client) CreateAssignment(ctx context.Context, a *model.Assignment) error {
	return c.do(ctx, http.MethodPost, "/assignments", nil, a, nil)
}

// --- Reference and reporting reads ---

func (c *Client) Vendors(ctx context.Context) ([]model.Vendor, error) {
	var out []model.Vendor
	err := c.do(ctx, http.MethodGet, "/vendors", nil, nil, &out)
	return out, err
}

func (c *Client) DashboardOverview(ctx context.Context) (*model.DashboardOverview, error) {
	var out model.DashboardOverview
	if err := c.do(ctx, http.MethodGet, "/dashboard/overview", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Alerts returns licenses expiring within days. days <= 0 means no
// threshold (all expiring licenses).
func (c *Client) Alerts(ctx context.Context, days int) ([]model.License, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out []model.License
	err := c.do(ctx, http.MethodGet, "/alerts", q, nil, &out)
	return out, err
}

// AuditQuery filters an audit log fetch. Empty fields are omitted.
type AuditQuery struct {
	EntityType string
	EntityID   string
	Action     string
	User       string
	Page       int
	Size       int
}

func (c *Client) AuditLogs(ctx context.Context, q AuditQuery) (model.Page[model.AuditLogEntry], error) {
	query := pageQuery(q.Page, q.Size)
	if q.EntityType != "" {
		query.Set("entityType", q.EntityType)
	}
	if q.EntityID != "" {
		query.Set("entityId", q.EntityID)
	}
	if q.Action != "" {
		query.Set("action", q.Action)
	}
	if q.User != "" {
		query.Set("user", q.User)
	}
	var out model.Page[model.AuditLogEntry]
	err := c.do(ctx, http.MethodGet, "/audit/logs", query, nil, &out)
	return out, err
}

// NonCompliantDevicesPDF streams the backend's PDF report to w.
func (c *Client) NonCompliantDevicesPDF(ctx context.Context, w io.Writer) error {
	return c.download(ctx, "/reports/non-compliant-devices/export/pdf", nil, w)
}

// LicenseUsageCSV streams the backend's CSV report to w, optionally
// filtered by vendor.
func (c *Client) LicenseUsageCSV(ctx context.Context, vendorID string, w io.Writer) error {
	q := url.Values{}
	if vendorID != "" {
		q.Set("vendorId", vendorID)
	}
	return c.download(ctx, "/reports/license-usage/export/csv", q, w)
}
