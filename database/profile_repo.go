package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const profileTable = "profile_info"

var profileColumns = []string{
	"id", "name", "title", "bio", "email", "phone", "location", "avatar_url",
	"resume_url", "social_links", "created_at", "updated_at",
}

var profileUpdateColumns = map[string]string{
	"name":        "name",
	"title":       "title",
	"bio":         "bio",
	"email":       "email",
	"phone":       "phone",
	"location":    "location",
	"avatarUrl":   "avatar_url",
	"resumeUrl":   "resume_url",
	"socialLinks": "social_links",
}

// ProfileRepo stores the single profile row under models.ProfileKey.
type ProfileRepo struct {
	engine Engine
	logger zerolog.Logger
}

func NewProfileRepo(engine Engine) *ProfileRepo {
	return &ProfileRepo{
		engine: engine,
		logger: log.With().Str("repo", "profileRepo").Logger(),
	}
}

func scanProfile(s scanner) (models.ProfileInfo, error) {
	var (
		p           models.ProfileInfo
		socialLinks string
	)
	err := s.Scan(
		&p.ID, &p.Name, &p.Title, &p.Bio, &p.Email, &p.Phone, &p.Location, &p.AvatarURL,
		&p.ResumeURL, &socialLinks, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	p.SocialLinks = models.DecodeLinkMap(socialLinks)
	return p, nil
}

// Get returns the profile, or an empty one if it was never saved.
func (r *ProfileRepo) Get(ctx context.Context) (*models.ProfileInfo, error) {
	profile, err := r.get(ctx, r.engine)
	if errs.IsNotFound(err) {
		return &models.ProfileInfo{ID: models.ProfileKey, SocialLinks: models.LinkMap{}}, nil
	}
	return profile, err
}

func (r *ProfileRepo) get(ctx context.Context, engine Engine) (*models.ProfileInfo, error) {
	stmt, args := SelectQuery{
		Table:   profileTable,
		Columns: profileColumns,
		Where:   []Predicate{Equals("id", models.ProfileKey)},
	}.Build(engine.Dialect())
	return findOne(ctx, engine, "profile", stmt, args, scanProfile)
}

// Upsert creates the profile row if needed and writes the set fields of
// patch. It returns errs.ErrNoChanges when patch is empty.
func (r *ProfileRepo) Upsert(ctx context.Context, patch models.ProfileInfoPatch) (*models.ProfileInfo, error) {
	var fields []Field
	fields = appendField(fields, "name", KindValue, patch.Name)
	fields = appendField(fields, "title", KindValue, patch.Title)
	fields = appendField(fields, "bio", KindValue, patch.Bio)
	fields = appendField(fields, "email", KindValue, patch.Email)
	fields = appendField(fields, "phone", KindValue, patch.Phone)
	fields = appendField(fields, "location", KindValue, patch.Location)
	fields = appendField(fields, "avatarUrl", KindValue, patch.AvatarURL)
	fields = appendField(fields, "resumeUrl", KindValue, patch.ResumeURL)
	fields = appendField(fields, "socialLinks", KindJSON, patch.SocialLinks)

	seed := []Field{
		{Name: "social_links", Kind: KindJSON, Value: models.LinkMap{}},
	}
	profile, err := upsertSingleton(ctx, r.engine, profileTable, models.ProfileKey, seed, profileUpdateColumns, fields, func(conn Engine) (*models.ProfileInfo, error) {
		return r.get(ctx, conn)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info().Int("fields", len(fields)).Msg("profile saved")
	return profile, nil
}

// upsertSingleton makes sure the row keyed by key exists, seeding any
// columns without a usable default, then applies fields to it.
func upsertSingleton[T any](ctx context.Context, engine Engine, table, key string, seed []Field, columns map[string]string, fields []Field, reload func(Engine) (*T, error)) (*T, error) {
	if len(fields) == 0 {
		return nil, errs.ErrNoChanges
	}

	var saved *T
	err := engine.WithConnection(ctx, func(conn Engine) error {
		ts := now()
		insert := append([]Field{{Name: "id", Value: key}}, seed...)
		insert = append(insert, Field{Name: "created_at", Value: ts}, Field{Name: "updated_at", Value: ts})

		stmt, args, err := BuildInsert(conn.Dialect(), table, insert)
		if err != nil {
			return err
		}
		if _, err := conn.Run(ctx, stmt+" ON CONFLICT (id) DO NOTHING", args...); err != nil {
			return err
		}

		stmt, args, _, err = BuildUpdate(conn.Dialect(), table, columns, fields, key, ts)
		if err != nil {
			return err
		}
		affected, err := conn.Run(ctx, stmt, args...)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errs.NewNoRowsAffectedError("upsert", table)
		}
		saved, err = reload(conn)
		return err
	})
	if err != nil {
		var apiErr *errs.ApiErr
		if errors.As(err, &apiErr) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save %s: %w", table, err)
	}
	return saved, nil
}
