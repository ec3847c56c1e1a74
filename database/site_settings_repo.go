package database

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const siteSettingsTable = "site_settings"

var siteSettingsColumns = []string{
	"id", "site_title", "site_description", "keywords", "nav_links", "show_blog",
	"show_projects", "maintenance_mode", "footer_text", "created_at", "updated_at",
}

var siteSettingsUpdateColumns = map[string]string{
	"siteTitle":       "site_title",
	"siteDescription": "site_description",
	"keywords":        "keywords",
	"navLinks":        "nav_links",
	"showBlog":        "show_blog",
	"showProjects":    "show_projects",
	"maintenanceMode": "maintenance_mode",
	"footerText":      "footer_text",
}

// SiteSettingsRepo stores the single settings row under models.SiteSettingsKey.
type SiteSettingsRepo struct {
	engine Engine
	logger zerolog.Logger
}

func NewSiteSettingsRepo(engine Engine) *SiteSettingsRepo {
	return &SiteSettingsRepo{
		engine: engine,
		logger: log.With().Str("repo", "siteSettingsRepo").Logger(),
	}
}

func scanSiteSettings(s scanner) (models.SiteSettings, error) {
	var (
		st                 models.SiteSettings
		keywords, navLinks string
	)
	err := s.Scan(
		&st.ID, &st.SiteTitle, &st.SiteDescription, &keywords, &navLinks, &st.ShowBlog,
		&st.ShowProjects, &st.MaintenanceMode, &st.FooterText, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return st, err
	}
	st.Keywords = models.DecodeStringList(keywords)
	st.NavLinks = models.DecodeLinkMap(navLinks)
	return st, nil
}

// DefaultSiteSettings is what Get returns before settings are first saved.
func DefaultSiteSettings() *models.SiteSettings {
	return &models.SiteSettings{
		ID:           models.SiteSettingsKey,
		Keywords:     models.StringList{},
		NavLinks:     models.LinkMap{},
		ShowBlog:     true,
		ShowProjects: true,
	}
}

func (r *SiteSettingsRepo) Get(ctx context.Context) (*models.SiteSettings, error) {
	settings, err := r.get(ctx, r.engine)
	if errs.IsNotFound(err) {
		return DefaultSiteSettings(), nil
	}
	return settings, err
}

func (r *SiteSettingsRepo) get(ctx context.Context, engine Engine) (*models.SiteSettings, error) {
	stmt, args := SelectQuery{
		Table:   siteSettingsTable,
		Columns: siteSettingsColumns,
		Where:   []Predicate{Equals("id", models.SiteSettingsKey)},
	}.Build(engine.Dialect())
	return findOne(ctx, engine, "site settings", stmt, args, scanSiteSettings)
}

// Upsert creates the settings row with defaults if needed and writes the set
// fields of patch. It returns errs.ErrNoChanges when patch is empty.
func (r *SiteSettingsRepo) Upsert(ctx context.Context, patch models.SiteSettingsPatch) (*models.SiteSettings, error) {
	var fields []Field
	fields = appendField(fields, "siteTitle", KindValue, patch.SiteTitle)
	fields = appendField(fields, "siteDescription", KindValue, patch.SiteDescription)
	fields = appendField(fields, "keywords", KindJSON, patch.Keywords)
	fields = appendField(fields, "navLinks", KindJSON, patch.NavLinks)
	fields = appendField(fields, "showBlog", KindBool, patch.ShowBlog)
	fields = appendField(fields, "showProjects", KindBool, patch.ShowProjects)
	fields = appendField(fields, "maintenanceMode", KindBool, patch.MaintenanceMode)
	fields = appendField(fields, "footerText", KindValue, patch.FooterText)

	defaults := DefaultSiteSettings()
	seed := []Field{
		{Name: "keywords", Kind: KindJSON, Value: defaults.Keywords},
		{Name: "nav_links", Kind: KindJSON, Value: defaults.NavLinks},
		{Name: "show_blog", Kind: KindBool, Value: defaults.ShowBlog},
		{Name: "show_projects", Kind: KindBool, Value: defaults.ShowProjects},
		{Name: "maintenance_mode", Kind: KindBool, Value: defaults.MaintenanceMode},
	}
	settings, err := upsertSingleton(ctx, r.engine, siteSettingsTable, models.SiteSettingsKey, seed, siteSettingsUpdateColumns, fields, func(conn Engine) (*models.SiteSettings, error) {
		return r.get(ctx, conn)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info().Int("fields", len(fields)).Msg("site settings saved")
	return settings, nil
}
