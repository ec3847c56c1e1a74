package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type experienceHandler struct {
	responder      Responder
	logger         zerolog.Logger
	experienceRepo *database.ExperienceRepo
}

func newExperienceHandler(experienceRepo *database.ExperienceRepo) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()

	return experienceHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		experienceRepo: experienceRepo,
	}
}

// getAllExperiences lists the work history in timeline order
// @Summary List experiences
// @Tags Experiences
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param search query string false "Text search"
// @Success 200 {object} models.Page[models.Experience]
// @Router /experiences [get]
func (h experienceHandler) getAllExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize, err := pageParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		experiences, err := h.experienceRepo.List(r.Context(), models.ExperienceFilter{
			Page:     page,
			PageSize: pageSize,
			Search:   r.URL.Query().Get("search"),
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experiences", err))
			return
		}

		h.responder.WriteJSON(w, experiences)
	}
}

// @Summary Get experience
// @Tags Experiences
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Success 200 {object} models.Experience
// @Failure 404 {object} ErrorResponse
// @Router /experience/{experienceID} [get]
func (h experienceHandler) getExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := pathID(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		experience, err := h.experienceRepo.FindByID(r.Context(), experienceID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experience", err))
			return
		}

		h.responder.WriteJSON(w, experience)
	}
}

// @Summary Create experience
// @Tags Experiences
// @Accept json
// @Produce json
// @Param experience body models.Experience true "Experience data"
// @Success 201 {object} models.Experience
// @Failure 400 {object} ErrorResponse
// @Router /experience [post]
func (h experienceHandler) createExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var experience models.Experience
		if err := decodeBody(w, r, &experience); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode experience request body")
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.experienceRepo.Add(r.Context(), experience)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "experience", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, created)
	}
}

// @Summary Update experience
// @Tags Experiences
// @Accept json
// @Produce json
// @Param experienceID path string true "Experience ID" format(uuid)
// @Param experience body models.ExperiencePatch true "Fields to change"
// @Success 200 {object} models.Experience
// @Router /experience/{experienceID} [put]
func (h experienceHandler) updateExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := pathID(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.ExperiencePatch
		if err := decodeBody(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		experience, err := h.experienceRepo.Update(r.Context(), experienceID, patch)
		if errs.IsNoChanges(err) {
			experience, err = h.experienceRepo.FindByID(r.Context(), experienceID)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "experience", err))
			return
		}

		h.responder.WriteJSON(w, experience)
	}
}

// @Summary Delete experience
// @Tags Experiences
// @Param experienceID path string true "Experience ID" format(uuid)
// @Success 204
// @Router /experience/{experienceID} [delete]
func (h experienceHandler) deleteExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := pathID(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.experienceRepo.Delete(r.Context(), experienceID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "experience", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("experience"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
