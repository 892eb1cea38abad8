// Package graphstore is a Neo4j implementation of database.DataStore.
//
// Workspaces, projects, labels and users are nodes:
//
//	(:Project)-[:IN_WORKSPACE]->(:Workspace)
//	(:Label)-[:IN_PROJECT]->(:Project)
//	(:Label)-[:HAS_PARENT]->(:Label)
//	(:User)-[:MEMBER_OF {role}]->(:Project)
//
// Labels carry a per-project sequence number so that listing them keeps
// creation order, like the SQLite store.
package graphstore

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/thenoetrevino/hue/internal/database"
	"github.com/thenoetrevino/hue/internal/models"
	"github.com/thenoetrevino/hue/internal/types"
)

// Store talks to a Neo4j server through a single driver
type Store struct {
	driver   neo4j.DriverWithContext
	database string
}

var _ database.DataStore = (*Store)(nil)

var schema = []string{
	`CREATE CONSTRAINT workspace_slug IF NOT EXISTS FOR (w:Workspace) REQUIRE w.slug IS UNIQUE`,
	`CREATE CONSTRAINT project_id IF NOT EXISTS FOR (p:Project) REQUIRE p.id IS UNIQUE`,
	`CREATE CONSTRAINT label_id IF NOT EXISTS FOR (l:Label) REQUIRE l.id IS UNIQUE`,
	`CREATE CONSTRAINT user_name IF NOT EXISTS FOR (u:User) REQUIRE u.name IS UNIQUE`,
}

// Open connects to uri, verifies connectivity and ensures the schema constraints.
// An empty dbName uses the server's default database.
func Open(ctx context.Context, uri, user, password, dbName string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j at %s: %w", uri, err)
	}

	s := New(driver, dbName)
	if err := s.ensureSchema(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, err
	}
	return s, nil
}

// New wraps an existing driver
func New(driver neo4j.DriverWithContext, dbName string) *Store {
	return &Store{driver: driver, database: dbName}
}

// Close closes the underlying driver
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		_, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			res, err := tx.Run(ctx, stmt, nil)
			if err != nil {
				return nil, err
			}
			return res.Consume(ctx)
		})
		if err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func (s *Store) read(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead, DatabaseName: s.database})
	defer session.Close(ctx)
	return session.ExecuteRead(ctx, work)
}

func (s *Store) write(ctx context.Context, work neo4j.ManagedTransactionWork) (any, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite, DatabaseName: s.database})
	defer session.Close(ctx)
	return session.ExecuteWrite(ctx, work)
}

// ============================================================================
// Workspaces
// ============================================================================

// CreateWorkspace creates a workspace node. An existing slug yields models.ErrConflict.
func (s *Store) CreateWorkspace(ctx context.Context, slug, name string) (*models.Workspace, error) {
	out, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (w:Workspace {slug: $slug}) RETURN w.slug AS slug`, map[string]any{"slug": slug})
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			return nil, fmt.Errorf("workspace %q: %w", slug, models.ErrConflict)
		}

		res, err = tx.Run(ctx,
			`CREATE (w:Workspace {slug: $slug, name: $name, created_at: datetime()})
			 RETURN w.slug AS slug, w.name AS name, w.created_at AS created_at`,
			map[string]any{"slug": slug, "name": name},
		)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return workspaceFromRecord(record), nil
	})
	if err != nil {
		return nil, wrap("failed to create workspace", err)
	}
	return out.(*models.Workspace), nil
}

// GetWorkspace retrieves a workspace by slug
func (s *Store) GetWorkspace(ctx context.Context, slug string) (*models.Workspace, error) {
	out, err := s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (w:Workspace {slug: $slug})
			 RETURN w.slug AS slug, w.name AS name, w.created_at AS created_at`,
			map[string]any{"slug": slug},
		)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, fmt.Errorf("workspace %q: %w", slug, models.ErrNotFound)
		}
		return workspaceFromRecord(res.Record()), res.Err()
	})
	if err != nil {
		return nil, wrap("failed to get workspace", err)
	}
	return out.(*models.Workspace), nil
}

// ============================================================================
// Projects
// ============================================================================

const projectReturn = `RETURN p.id AS id, w.slug AS workspace, p.name AS name,
	p.description AS description, p.created_at AS created_at, p.updated_at AS updated_at`

// CreateProject creates a project inside an existing workspace
func (s *Store) CreateProject(ctx context.Context, workspaceSlug, name, description string) (*models.Project, error) {
	out, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (w:Workspace {slug: $workspace})
			 CREATE (p:Project {id: $id, name: $name, description: $description,
			                    created_at: datetime(), updated_at: datetime()})-[:IN_WORKSPACE]->(w)
			 `+projectReturn,
			map[string]any{
				"workspace":   workspaceSlug,
				"id":          types.NewID(),
				"name":        name,
				"description": description,
			},
		)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, fmt.Errorf("workspace %q: %w", workspaceSlug, models.ErrNotFound)
		}
		return projectFromRecord(res.Record()), res.Err()
	})
	if err != nil {
		return nil, wrap("failed to create project", err)
	}
	return out.(*models.Project), nil
}

// GetProject retrieves a project by ID
func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	out, err := s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (p:Project {id: $id})-[:IN_WORKSPACE]->(w:Workspace) `+projectReturn,
			map[string]any{"id": id},
		)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, fmt.Errorf("project %s: %w", id, models.ErrNotFound)
		}
		return projectFromRecord(res.Record()), res.Err()
	})
	if err != nil {
		return nil, wrap("failed to get project", err)
	}
	return out.(*models.Project), nil
}

// GetProjectsByWorkspace lists a workspace's projects by name
func (s *Store) GetProjectsByWorkspace(ctx context.Context, slug string) ([]*models.Project, error) {
	out, err := s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (p:Project)-[:IN_WORKSPACE]->(w:Workspace {slug: $slug}) `+projectReturn+`
			 ORDER BY name, id`,
			map[string]any{"slug": slug},
		)
		if err != nil {
			return nil, err
		}
		projects := make([]*models.Project, 0)
		for res.Next(ctx) {
			projects = append(projects, projectFromRecord(res.Record()))
		}
		return projects, res.Err()
	})
	if err != nil {
		return nil, wrap("failed to list projects", err)
	}
	return out.([]*models.Project), nil
}

// ============================================================================
// Labels
// ============================================================================

const labelReturn = `OPTIONAL MATCH (l)-[:HAS_PARENT]->(parent:Label)
	RETURN l.id AS id, p.id AS project_id, l.name AS name, l.color AS color,
	       parent.id AS parent_id, l.created_at AS created_at`

// CreateLabel creates a label, optionally pointed at a parent of the same project
func (s *Store) CreateLabel(ctx context.Context, projectID, name, color, parentID string) (*models.Label, error) {
	id := types.NewID()
	out, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if parentID != "" {
			if err := checkParent(ctx, tx, projectID, parentID); err != nil {
				return nil, err
			}
		}

		res, err := tx.Run(ctx,
			`MATCH (p:Project {id: $project})
			 SET p.label_seq = coalesce(p.label_seq, 0) + 1
			 CREATE (l:Label {id: $id, name: $name, color: $color, seq: p.label_seq,
			                  created_at: datetime()})-[:IN_PROJECT]->(p)
			 RETURN l.id AS id`,
			map[string]any{"project": projectID, "id": id, "name": name, "color": color},
		)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, fmt.Errorf("project %s: %w", projectID, models.ErrNotFound)
		}

		if parentID != "" {
			if err := linkParent(ctx, tx, id, parentID); err != nil {
				return nil, err
			}
		}
		return getLabel(ctx, tx, id)
	})
	if err != nil {
		return nil, wrap("failed to create label", err)
	}
	return out.(*models.Label), nil
}

// GetLabelsByProject retrieves all labels for a project in creation order
func (s *Store) GetLabelsByProject(ctx context.Context, projectID string) ([]*models.Label, error) {
	out, err := s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (l:Label)-[:IN_PROJECT]->(p:Project {id: $project}) `+labelReturn+`
			 ORDER BY l.seq, l.id`,
			map[string]any{"project": projectID},
		)
		if err != nil {
			return nil, err
		}
		labels := make([]*models.Label, 0)
		for res.Next(ctx) {
			labels = append(labels, labelFromRecord(res.Record()))
		}
		return labels, res.Err()
	})
	if err != nil {
		return nil, wrap("failed to list labels", err)
	}
	return out.([]*models.Label), nil
}

// GetLabel retrieves a single label by ID
func (s *Store) GetLabel(ctx context.Context, id string) (*models.Label, error) {
	out, err := s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return getLabel(ctx, tx, id)
	})
	if err != nil {
		return nil, wrap("failed to get label", err)
	}
	return out.(*models.Label), nil
}

// UpdateLabel overwrites a label's name, color and parent. An empty parentID
// detaches the label.
func (s *Store) UpdateLabel(ctx context.Context, id, name, color, parentID string) error {
	_, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		projectID, err := labelProject(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if parentID != "" {
			if parentID == id {
				return nil, fmt.Errorf("label %s cannot be its own parent: %w", id, models.ErrInvalidParent)
			}
			if err := checkParent(ctx, tx, projectID, parentID); err != nil {
				return nil, err
			}
			if err := checkCycle(ctx, tx, id, parentID); err != nil {
				return nil, err
			}
		}

		res, err := tx.Run(ctx,
			`MATCH (l:Label {id: $id}) SET l.name = $name, l.color = $color`,
			map[string]any{"id": id, "name": name, "color": color},
		)
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}
		if err := unlinkParent(ctx, tx, id); err != nil {
			return nil, err
		}
		if parentID != "" {
			return nil, linkParent(ctx, tx, id, parentID)
		}
		return nil, nil
	})
	return wrap("failed to update label", err)
}

// DeleteLabel removes a label. DETACH DELETE drops the children's HAS_PARENT
// edges, so they become top-level.
func (s *Store) DeleteLabel(ctx context.Context, id string) error {
	_, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (l:Label {id: $id}) DETACH DELETE l`, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		summary, err := res.Consume(ctx)
		if err != nil {
			return nil, err
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, fmt.Errorf("label %s: %w", id, models.ErrNotFound)
		}
		return nil, nil
	})
	return wrap("failed to delete label", err)
}

// SetLabelParent moves every child under parentID in one transaction
func (s *Store) SetLabelParent(ctx context.Context, parentID string, childIDs []string) error {
	_, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		projectID, err := labelProject(ctx, tx, parentID)
		if err != nil {
			return nil, fmt.Errorf("parent %w", err)
		}

		for _, childID := range childIDs {
			if childID == parentID {
				return nil, fmt.Errorf("label %s cannot be its own parent: %w", childID, models.ErrInvalidParent)
			}
			childProject, err := labelProject(ctx, tx, childID)
			if err != nil {
				return nil, err
			}
			if childProject != projectID {
				return nil, fmt.Errorf("label %s in project %s: %w", childID, projectID, models.ErrNotFound)
			}
			if err := checkCycle(ctx, tx, childID, parentID); err != nil {
				return nil, err
			}
			if err := unlinkParent(ctx, tx, childID); err != nil {
				return nil, err
			}
			if err := linkParent(ctx, tx, childID, parentID); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return wrap("failed to set label parent", err)
}

func getLabel(ctx context.Context, tx neo4j.ManagedTransaction, id string) (*models.Label, error) {
	res, err := tx.Run(ctx,
		`MATCH (l:Label {id: $id})-[:IN_PROJECT]->(p:Project) `+labelReturn,
		map[string]any{"id": id},
	)
	if err != nil {
		return nil, err
	}
	if !res.Next(ctx) {
		return nil, fmt.Errorf("label %s: %w", id, models.ErrNotFound)
	}
	return labelFromRecord(res.Record()), res.Err()
}

func labelProject(ctx context.Context, tx neo4j.ManagedTransaction, id string) (string, error) {
	res, err := tx.Run(ctx,
		`MATCH (l:Label {id: $id})-[:IN_PROJECT]->(p:Project) RETURN p.id AS project_id`,
		map[string]any{"id": id},
	)
	if err != nil {
		return "", err
	}
	if !res.Next(ctx) {
		return "", fmt.Errorf("label %s: %w", id, models.ErrNotFound)
	}
	return stringValue(res.Record(), "project_id"), res.Err()
}

// checkParent verifies that parentID names a label of projectID
func checkParent(ctx context.Context, tx neo4j.ManagedTransaction, projectID, parentID string) error {
	parentProject, err := labelProject(ctx, tx, parentID)
	if err != nil {
		return fmt.Errorf("parent %w", err)
	}
	if parentProject != projectID {
		return fmt.Errorf("parent label %s belongs to another project: %w", parentID, models.ErrInvalidParent)
	}
	return nil
}

// checkCycle fails when childID is parentID or one of its ancestors
func checkCycle(ctx context.Context, tx neo4j.ManagedTransaction, childID, parentID string) error {
	res, err := tx.Run(ctx,
		`MATCH (:Label {id: $parent})-[:HAS_PARENT*0..]->(a:Label {id: $child})
		 RETURN count(a) AS hits`,
		map[string]any{"parent": parentID, "child": childID},
	)
	if err != nil {
		return err
	}
	if res.Next(ctx) && intValue(res.Record(), "hits") > 0 {
		return fmt.Errorf("label %s is an ancestor of %s: %w", childID, parentID, models.ErrInvalidParent)
	}
	return res.Err()
}

func linkParent(ctx context.Context, tx neo4j.ManagedTransaction, childID, parentID string) error {
	res, err := tx.Run(ctx,
		`MATCH (child:Label {id: $child}), (parent:Label {id: $parent})
		 CREATE (child)-[:HAS_PARENT]->(parent)`,
		map[string]any{"child": childID, "parent": parentID},
	)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

func unlinkParent(ctx context.Context, tx neo4j.ManagedTransaction, id string) error {
	res, err := tx.Run(ctx,
		`MATCH (:Label {id: $id})-[r:HAS_PARENT]->() DELETE r`,
		map[string]any{"id": id},
	)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

// ============================================================================
// Members
// ============================================================================

// UpsertMember grants a role, replacing any previous role of the user
func (s *Store) UpsertMember(ctx context.Context, member *models.Member) error {
	_, err := s.write(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (p:Project {id: $project})
			 MERGE (u:User {name: $user})
			 MERGE (u)-[m:MEMBER_OF]->(p)
			 SET m.role = $role
			 RETURN u.name AS user`,
			map[string]any{"project": member.ProjectID, "user": member.User, "role": int64(member.Role)},
		)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, fmt.Errorf("project %s: %w", member.ProjectID, models.ErrNotFound)
		}
		return nil, res.Err()
	})
	return wrap("failed to upsert member", err)
}

// GetMemberRole returns the user's role, or models.ErrNotFound when the user
// is not a member of the project
func (s *Store) GetMemberRole(ctx context.Context, projectID, user string) (models.Role, error) {
	out, err := s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (:User {name: $user})-[m:MEMBER_OF]->(:Project {id: $project}) RETURN m.role AS role`,
			map[string]any{"project": projectID, "user": user},
		)
		if err != nil {
			return nil, err
		}
		if !res.Next(ctx) {
			return nil, fmt.Errorf("member %s: %w", user, models.ErrNotFound)
		}
		return models.Role(intValue(res.Record(), "role")), res.Err()
	})
	if err != nil {
		return models.RoleNone, wrap("failed to get member role", err)
	}
	return out.(models.Role), nil
}

// GetMembersByProject lists members, highest role first
func (s *Store) GetMembersByProject(ctx context.Context, projectID string) ([]*models.Member, error) {
	out, err := s.read(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			`MATCH (u:User)-[m:MEMBER_OF]->(p:Project {id: $project})-[:IN_WORKSPACE]->(w:Workspace)
			 RETURN w.slug AS workspace, p.id AS project_id, u.name AS user, m.role AS role
			 ORDER BY role DESC, user`,
			map[string]any{"project": projectID},
		)
		if err != nil {
			return nil, err
		}
		members := make([]*models.Member, 0)
		for res.Next(ctx) {
			members = append(members, memberFromRecord(res.Record()))
		}
		return members, res.Err()
	})
	if err != nil {
		return nil, wrap("failed to list members", err)
	}
	return out.([]*models.Member), nil
}

// ============================================================================
// Record mapping
// ============================================================================

func workspaceFromRecord(record *neo4j.Record) *models.Workspace {
	return &models.Workspace{
		Slug:      stringValue(record, "slug"),
		Name:      stringValue(record, "name"),
		CreatedAt: timeValue(record, "created_at"),
	}
}

func projectFromRecord(record *neo4j.Record) *models.Project {
	return &models.Project{
		ID:            stringValue(record, "id"),
		WorkspaceSlug: stringValue(record, "workspace"),
		Name:          stringValue(record, "name"),
		Description:   stringValue(record, "description"),
		CreatedAt:     timeValue(record, "created_at"),
		UpdatedAt:     timeValue(record, "updated_at"),
	}
}

func labelFromRecord(record *neo4j.Record) *models.Label {
	return &models.Label{
		ID:        stringValue(record, "id"),
		ProjectID: stringValue(record, "project_id"),
		Name:      stringValue(record, "name"),
		Color:     stringValue(record, "color"),
		Parent:    stringValue(record, "parent_id"),
		CreatedAt: timeValue(record, "created_at"),
	}
}

func memberFromRecord(record *neo4j.Record) *models.Member {
	return &models.Member{
		WorkspaceSlug: stringValue(record, "workspace"),
		ProjectID:     stringValue(record, "project_id"),
		User:          stringValue(record, "user"),
		Role:          models.Role(intValue(record, "role")),
	}
}

// stringValue returns "" for missing and null values
func stringValue(record *neo4j.Record, key string) string {
	v, _ := record.Get(key)
	s, _ := v.(string)
	return s
}

func intValue(record *neo4j.Record, key string) int64 {
	v, _ := record.Get(key)
	n, _ := v.(int64)
	return n
}

func timeValue(record *neo4j.Record, key string) time.Time {
	v, _ := record.Get(key)
	t, _ := v.(time.Time)
	return t.UTC()
}

func wrap(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
