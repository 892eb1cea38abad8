package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/thenoetrevino/hue/internal/hierarchy"
	"github.com/thenoetrevino/hue/internal/models"
	labelservice "github.com/thenoetrevino/hue/internal/services/label"
	sessionservice "github.com/thenoetrevino/hue/internal/services/session"
	"github.com/thenoetrevino/hue/internal/types"
)

// scope is the workspace, project and caller of a project route
type scope struct {
	workspace string
	project   string
	user      string
}

func scopeOf(r *http.Request) scope {
	vars := mux.Vars(r)
	return scope{
		workspace: vars["workspace"],
		project:   vars["project"],
		user:      r.Header.Get(UserHeader),
	}
}

// member resolves the caller's access for read routes
func (s *Server) member(r *http.Request, sc scope) (sessionservice.Access, error) {
	return s.sessions.Authorize(r.Context(), sc.workspace, sc.project, sc.user)
}

// admin resolves the caller's access for write routes
func (s *Server) admin(r *http.Request, sc scope) (sessionservice.Access, error) {
	return s.sessions.RequireAdmin(r.Context(), sc.workspace, sc.project, sc.user)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	sc := scopeOf(r)
	if _, err := s.member(r, sc); err != nil {
		s.writeError(w, r, err)
		return
	}
	project, err := s.projects.GetProject(r.Context(), sc.workspace, sc.project)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) getAccess(w http.ResponseWriter, r *http.Request) {
	access, err := s.member(r, scopeOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, access)
}

func (s *Server) listLabels(w http.ResponseWriter, r *http.Request) {
	sc := scopeOf(r)
	if _, err := s.member(r, sc); err != nil {
		s.writeError(w, r, err)
		return
	}
	labels, err := s.labels.GetLabelsByProject(r.Context(), sc.project)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, labels)
}

func (s *Server) labelTree(w http.ResponseWriter, r *http.Request) {
	sc := scopeOf(r)
	if _, err := s.member(r, sc); err != nil {
		s.writeError(w, r, err)
		return
	}
	labels, err := s.labels.GetLabelsByProject(r.Context(), sc.project)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hierarchy.BuildTree(labels))
}

func (s *Server) createLabel(w http.ResponseWriter, r *http.Request) {
	sc := scopeOf(r)
	if _, err := s.admin(r, sc); err != nil {
		s.writeError(w, r, err)
		return
	}

	var body CreateLabelBody
	if err := decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	label, err := s.labels.CreateLabel(r.Context(), labelservice.CreateLabelRequest{
		ProjectID: sc.project,
		Name:      body.Name,
		Color:     body.Color,
		Parent:    body.Parent,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, label)
}

func (s *Server) updateLabel(w http.ResponseWriter, r *http.Request) {
	sc := scopeOf(r)
	if _, err := s.admin(r, sc); err != nil {
		s.writeError(w, r, err)
		return
	}

	var body UpdateLabelBody
	if err := decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	label, err := s.projectLabel(r.Context(), sc.project, mux.Vars(r)["label"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	updated, err := s.labels.UpdateLabel(r.Context(), labelservice.UpdateLabelRequest{
		ID:     label.ID,
		Name:   body.Name,
		Color:  body.Color,
		Parent: body.Parent,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteLabel(w http.ResponseWriter, r *http.Request) {
	sc := scopeOf(r)
	if _, err := s.admin(r, sc); err != nil {
		s.writeError(w, r, err)
		return
	}

	label, err := s.projectLabel(r.Context(), sc.project, mux.Vars(r)["label"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.labels.DeleteLabel(r.Context(), label.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addChildren(w http.ResponseWriter, r *http.Request) {
	sc := scopeOf(r)
	if _, err := s.admin(r, sc); err != nil {
		s.writeError(w, r, err)
		return
	}

	var body AddChildrenBody
	if err := decode(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	parent, err := s.projectLabel(r.Context(), sc.project, mux.Vars(r)["label"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.labels.AddLabelsToGroup(r.Context(), parent.ID, body.Children); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// projectLabel fetches a label and hides labels of other projects. IDs the
// stores could never have issued are not looked up.
func (s *Server) projectLabel(ctx context.Context, projectID, labelID string) (*models.Label, error) {
	if !types.IsValidID(labelID) {
		return nil, labelservice.ErrLabelNotFound
	}
	label, err := s.labels.GetLabel(ctx, labelID)
	if err != nil {
		return nil, err
	}
	if label.ProjectID != projectID {
		return nil, labelservice.ErrLabelNotFound
	}
	return label, nil
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}
