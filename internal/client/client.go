// Package client talks to hued. It implements the optimistic coordinator's
// store contracts so the settings screen can run against a remote server.
package client

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

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/thenoetrevino/hue/internal/api"
	"github.com/thenoetrevino/hue/internal/hierarchy"
	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/optimistic"
	sessionservice "github.com/thenoetrevino/hue/internal/services/session"
)

// Errors matched through APIError
var (
	ErrForbidden  = errors.New("forbidden")
	ErrBadRequest = errors.New("bad request")
)

// APIError is a non-2xx response from hued
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d %s)", e.Message, e.StatusCode, e.Code)
}

// Unwrap lets errors.Is match models.ErrNotFound, ErrForbidden and ErrBadRequest
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return models.ErrNotFound
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusBadRequest:
		return ErrBadRequest
	}
	return nil
}

// Defaults
const (
	DefaultTimeout   = 10 * time.Second
	DefaultCacheSize = 64
)

// Client is an HTTP client for one hued server and one caller
type Client struct {
	baseURL   string
	user      string
	http      *http.Client
	timeout   time.Duration
	cacheSize int
	projects  *lru.Cache[string, *models.Project]
	logger    *slog.Logger
}

var (
	_ optimistic.LabelStore    = (*Client)(nil)
	_ optimistic.ProjectLookup = (*Client)(nil)
)

// Option configures a Client
type Option func(*Client)

// WithTimeout bounds every request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithCacheSize sets how many projects are kept in the LRU
func WithCacheSize(n int) Option {
	return func(c *Client) {
		c.cacheSize = n
	}
}

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for baseURL acting as user
func New(baseURL, user string, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid remote URL %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		user:      user,
		timeout:   DefaultTimeout,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	cache, err := lru.New[string, *models.Project](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create project cache: %w", err)
	}
	c.projects = cache
	return c, nil
}

// Close releases idle connections
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Health checks that the server answers
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// GetProject returns project details, served from the LRU after the first fetch
func (c *Client) GetProject(ctx context.Context, workspace, projectID string) (*models.Project, error) {
	key := workspace + "/" + projectID
	if p, ok := c.projects.Get(key); ok {
		return p, nil
	}

	var project models.Project
	if err := c.do(ctx, http.MethodGet, projectPath(workspace, projectID), nil, &project); err != nil {
		return nil, err
	}
	c.projects.Add(key, &project)
	return &project, nil
}

// Access returns the caller's role flags on the project
func (c *Client) Access(ctx context.Context, workspace, projectID string) (sessionservice.Access, error) {
	var access sessionservice.Access
	err := c.do(ctx, http.MethodGet, projectPath(workspace, projectID)+"/access", nil, &access)
	return access, err
}

// ListLabels lists a project's labels in server order
func (c *Client) ListLabels(ctx context.Context, workspace, projectID string) ([]*models.Label, error) {
	var labels []*models.Label
	if err := c.do(ctx, http.MethodGet, projectPath(workspace, projectID)+"/labels", nil, &labels); err != nil {
		return nil, err
	}
	if labels == nil {
		labels = []*models.Label{}
	}
	return labels, nil
}

// LabelTree fetches the resolved grouping
func (c *Client) LabelTree(ctx context.Context, workspace, projectID string) (hierarchy.Tree, error) {
	var tree hierarchy.Tree
	err := c.do(ctx, http.MethodGet, projectPath(workspace, projectID)+"/labels/tree", nil, &tree)
	return tree, err
}

// CreateLabel creates a label
func (c *Client) CreateLabel(ctx context.Context, workspace, projectID string, body api.CreateLabelBody) (*models.Label, error) {
	var label models.Label
	if err := c.do(ctx, http.MethodPost, projectPath(workspace, projectID)+"/labels", body, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// UpdateLabel renames, recolors or reparents a label
func (c *Client) UpdateLabel(ctx context.Context, workspace, projectID, labelID string, body api.UpdateLabelBody) (*models.Label, error) {
	var label models.Label
	if err := c.do(ctx, http.MethodPatch, labelPath(workspace, projectID, labelID), body, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// AddLabelsToGroup makes every child a direct child of parentID
func (c *Client) AddLabelsToGroup(ctx context.Context, workspace, projectID, parentID string, childIDs []string) error {
	return c.do(ctx, http.MethodPost, labelPath(workspace, projectID, parentID)+"/children",
		api.AddChildrenBody{Children: childIDs}, nil)
}

// DeleteLabel deletes a label of the scoped project
func (c *Client) DeleteLabel(ctx context.Context, workspace, projectID, labelID string) error {
	return c.do(ctx, http.MethodDelete, labelPath(workspace, projectID, labelID), nil, nil)
}

func projectPath(workspace, projectID string) string {
	return "/api/workspaces/" + url.PathEscape(workspace) + "/projects/" + url.PathEscape(projectID)
}

func labelPath(workspace, projectID, labelID string) string {
	return projectPath(workspace, projectID) + "/labels/" + url.PathEscape(labelID)
}

// do sends body as JSON and decodes a 2xx response into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set(api.UserHeader, c.user)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       api.CodeInternal,
		Message:    http.StatusText(resp.StatusCode),
		RequestID:  resp.Header.Get(api.RequestIDHeader),
	}
	var envelope api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Code != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	c.logger.Debug("remote request failed",
		"status", apiErr.StatusCode,
		"code", apiErr.Code,
		"request_id", apiErr.RequestID,
	)
	return apiErr
}
