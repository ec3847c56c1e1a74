package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects lists projects
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param search query string false "Text search"
// @Param category query string false "Category"
// @Param featured query bool false "Featured only"
// @Success 200 {object} models.Page[models.Project]
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize, err := pageParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		featured, err := queryBool(r, "featured")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projectRepo.List(r.Context(), models.ProjectFilter{
			Page:     page,
			PageSize: pageSize,
			Search:   r.URL.Query().Get("search"),
			Category: r.URL.Query().Get("category"),
			Featured: featured,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.Project true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Router /project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := decodeBody(w, r, &project); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.projectRepo.Add(r.Context(), project)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, created)
	}
}

// updateProject applies a partial update
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body models.ProjectPatch true "Fields to change"
// @Success 200 {object} models.Project
// @Router /project/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.ProjectPatch
		if err := decodeBody(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Update(r.Context(), projectID, patch)
		if errs.IsNoChanges(err) {
			project, err = h.projectRepo.FindByID(r.Context(), projectID)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject removes a project
// @Summary Delete project
// @Tags Projects
// @Param projectID path string true "Project ID" format(uuid)
// @Success 204
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.projectRepo.Delete(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
