package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type educationHandler struct {
	responder      Responder
	logger         zerolog.Logger
	educationRepo *database.EducationRepo
}

func newEducationHandler(educationRepo *database.EducationRepo) educationHandler {
	logger := log.With().Str("handlerName", "educationHandler").Logger()

	return educationHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		educationRepo: educationRepo,
	}
}

// getAllEducation lists degrees and certifications in timeline order
// @Summary List education
// @Tags Education
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param search query string false "Text search"
// @Success 200 {object} models.Page[models.Education]
// @Router /education [get]
func (h educationHandler) getAllEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize, err := pageParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		entries, err := h.educationRepo.List(r.Context(), models.EducationFilter{
			Page:     page,
			PageSize: pageSize,
			Search:   r.URL.Query().Get("search"),
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education entries", err))
			return
		}

		h.responder.WriteJSON(w, entries)
	}
}

// @Summary Get education
// @Tags Education
// @Produce json
// @Param educationID path string true "Education ID" format(uuid)
// @Success 200 {object} models.Education
// @Failure 404 {object} ErrorResponse
// @Router /education/{educationID} [get]
func (h educationHandler) getEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		educationID, err := pathID(r, "educationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		education, err := h.educationRepo.FindByID(r.Context(), educationID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}

		h.responder.WriteJSON(w, education)
	}
}

// @Summary Create education
// @Tags Education
// @Accept json
// @Produce json
// @Param education body models.Education true "Education data"
// @Success 201 {object} models.Education
// @Failure 400 {object} ErrorResponse
// @Router /education [post]
func (h educationHandler) createEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var education models.Education
		if err := decodeBody(w, r, &education); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode education request body")
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.educationRepo.Add(r.Context(), education)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "education", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, created)
	}
}

// @Summary Update education
// @Tags Education
// @Accept json
// @Produce json
// @Param educationID path string true "Education ID" format(uuid)
// @Param education body models.EducationPatch true "Fields to change"
// @Success 200 {object} models.Education
// @Router /education/{educationID} [put]
func (h educationHandler) updateEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		educationID, err := pathID(r, "educationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.EducationPatch
		if err := decodeBody(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		education, err := h.educationRepo.Update(r.Context(), educationID, patch)
		if errs.IsNoChanges(err) {
			education, err = h.educationRepo.FindByID(r.Context(), educationID)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "education", err))
			return
		}

		h.responder.WriteJSON(w, education)
	}
}

// @Summary Delete education
// @Tags Education
// @Param educationID path string true "Education ID" format(uuid)
// @Success 204
// @Router /education/{educationID} [delete]
func (h educationHandler) deleteEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		educationID, err := pathID(r, "educationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.educationRepo.Delete(r.Context(), educationID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "education", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("education"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
