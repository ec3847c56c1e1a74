package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// profileHandler serves the two singleton records: the owner profile and
// the site settings.
type profileHandler struct {
	responder        Responder
	logger           zerolog.Logger
	profileRepo      *database.ProfileRepo
	siteSettingsRepo *database.SiteSettingsRepo
}

func newProfileHandler(profileRepo *database.ProfileRepo, siteSettingsRepo *database.SiteSettingsRepo) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		profileRepo:      profileRepo,
		siteSettingsRepo: siteSettingsRepo,
	}
}

// @Summary Get profile
// @Tags Profile
// @Produce json
// @Success 200 {object} models.ProfileInfo
// @Router /profile [get]
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profileRepo.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		h.responder.WriteJSON(w, profile)
	}
}

// updateProfile creates the profile on first write
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body models.ProfileInfoPatch true "Fields to change"
// @Success 200 {object} models.ProfileInfo
// @Router /profile [put]
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.ProfileInfoPatch
		if err := decodeBody(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.profileRepo.Upsert(r.Context(), patch)
		if errs.IsNoChanges(err) {
			profile, err = h.profileRepo.Get(r.Context())
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "profile", err))
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}

// @Summary Get site settings
// @Tags Profile
// @Produce json
// @Success 200 {object} models.SiteSettings
// @Router /settings [get]
func (h profileHandler) getSiteSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.siteSettingsRepo.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "site settings", err))
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}

// @Summary Update site settings
// @Tags Profile
// @Accept json
// @Produce json
// @Param settings body models.SiteSettingsPatch true "Fields to change"
// @Success 200 {object} models.SiteSettings
// @Router /settings [put]
func (h profileHandler) updateSiteSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.SiteSettingsPatch
		if err := decodeBody(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		settings, err := h.siteSettingsRepo.Upsert(r.Context(), patch)
		if errs.IsNoChanges(err) {
			settings, err = h.siteSettingsRepo.Get(r.Context())
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "site settings", err))
			return
		}

		h.responder.WriteJSON(w, settings)
	}
}
