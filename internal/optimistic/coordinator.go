package optimistic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thenoetrevino/hue/internal/models"
)

// Coordinator errors
var (
	ErrProjectNotLoaded = errors.New("project context not loaded")
	ErrLabelsNotLoaded  = errors.New("label collection not loaded")
	ErrClosed           = errors.New("coordinator closed")
)

// LabelStore is the remote label service
type LabelStore interface {
	ListLabels(ctx context.Context, workspace, projectID string) ([]*models.Label, error)
	DeleteLabel(ctx context.Context, workspace, projectID, labelID string) error
}

// ProjectLookup resolves project details
type ProjectLookup interface {
	GetProject(ctx context.Context, workspace, projectID string) (*models.Project, error)
}

// Scope names the project a coordinator works on
type Scope struct {
	Workspace string
	ProjectID string
}

func (s Scope) String() string {
	return s.Workspace + "/" + s.ProjectID
}

// FailureFunc is called after a remote delete failed and was rolled back
type FailureFunc func(labelID string, err error)

// Option configures a Coordinator
type Option func(*Coordinator)

// WithOnFailure registers a callback for rolled-back deletes
func WithOnFailure(fn FailureFunc) Option {
	return func(c *Coordinator) {
		c.onFailure = fn
	}
}

// WithLogger sets the logger used for remote failures
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// Coordinator loads a project's labels into a Cache and runs optimistic
// deletes against the remote store.
type Coordinator struct {
	scope     Scope
	store     LabelStore
	projects  ProjectLookup
	cache     *Cache
	logger    *slog.Logger
	onFailure FailureFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	project *models.Project
	closed  bool
}

// NewCoordinator creates a coordinator for one project
func NewCoordinator(scope Scope, store LabelStore, projects ProjectLookup, opts ...Option) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		scope:    scope,
		store:    store,
		projects: projects,
		cache:    NewCache(),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "optimistic", "scope", scope.String())
	return c
}

// Scope returns the project scope
func (c *Coordinator) Scope() Scope {
	return c.scope
}

// Cache returns the local label collection
func (c *Coordinator) Cache() *Cache {
	return c.cache
}

// Project returns the loaded project, or nil before Load succeeds
func (c *Coordinator) Project() *models.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.project
}

// Load fetches the project details and then its labels
func (c *Coordinator) Load(ctx context.Context) error {
	project, err := c.projects.GetProject(ctx, c.scope.Workspace, c.scope.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	c.mu.Lock()
	c.project = project
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh refetches the label collection
func (c *Coordinator) Refresh(ctx context.Context) error {
	since := c.cache.Version()
	labels, err := c.store.ListLabels(ctx, c.scope.Workspace, c.scope.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to load labels: %w", err)
	}
	if !c.cache.Replace(labels, since) {
		c.logger.Debug("dropped stale label fetch", "since", since)
	}
	return nil
}

// DeleteLabel removes the label from the cache right away and deletes it
// remotely in the background. If the remote delete fails the label is put
// back and the failure is reported through the Pending and the failure
// callback. Cancelling ctx or closing the coordinator aborts the remote call.
func (c *Coordinator) DeleteLabel(ctx context.Context, labelID string) (*Pending, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.project == nil {
		return nil, ErrProjectNotLoaded
	}
	if !c.cache.IsLoaded() {
		return nil, ErrLabelsNotLoaded
	}

	token := c.cache.ApplyOptimistic(RemoveLabel(labelID))
	p := &Pending{LabelID: labelID, token: token, done: make(chan struct{})}

	remoteCtx, cancel := context.WithCancel(c.ctx)
	stop := context.AfterFunc(ctx, cancel)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		defer stop()
		c.settle(remoteCtx, p)
	}()

	return p, nil
}

func (c *Coordinator) settle(ctx context.Context, p *Pending) {
	defer close(p.done)

	err := c.store.DeleteLabel(ctx, c.scope.Workspace, c.scope.ProjectID, p.LabelID)
	if err == nil {
		if cerr := c.cache.Confirm(p.token); cerr != nil {
			c.logger.Error("failed to confirm delete", "label_id", p.LabelID, "error", cerr)
		}
		return
	}

	if rerr := c.cache.Rollback(p.token); rerr != nil {
		c.logger.Error("failed to roll back delete", "label_id", p.LabelID, "error", rerr)
	}
	p.err = fmt.Errorf("failed to delete label %s: %w", p.LabelID, err)
	c.logger.Error("remote delete failed, rolled back", "label_id", p.LabelID, "error", err)

	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if !closed && c.onFailure != nil {
		c.onFailure(p.LabelID, p.err)
	}
}

// Close cancels in-flight remote calls and waits for them to settle
func (c *Coordinator) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	return nil
}

// Pending is a delete whose remote call may still be running
type Pending struct {
	LabelID string
	token   Token
	done    chan struct{}
	err     error
}

// Done is closed once the delete was confirmed or rolled back
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the delete settles and returns the remote error, if any
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the remote error once Done is closed
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}
