package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const experienceTable = "experiences"

var experienceColumns = []string{
	"id", "company", "position", "location", "description", "responsibilities",
	"technologies", "start_date", "end_date", "order_index", "created_at", "updated_at",
}

var experienceUpdateColumns = map[string]string{
	"company":          "company",
	"position":         "position",
	"location":         "location",
	"description":      "description",
	"responsibilities": "responsibilities",
	"technologies":     "technologies",
	"startDate":        "start_date",
	"endDate":          "end_date",
	"orderIndex":       "order_index",
}

type ExperienceRepo struct {
	engine Engine
	logger zerolog.Logger
}

func NewExperienceRepo(engine Engine) *ExperienceRepo {
	return &ExperienceRepo{
		engine: engine,
		logger: log.With().Str("repo", "experienceRepo").Logger(),
	}
}

func scanExperience(s scanner) (models.Experience, error) {
	var (
		e                              models.Experience
		responsibilities, technologies string
	)
	err := s.Scan(
		&e.ID, &e.Company, &e.Position, &e.Location, &e.Description, &responsibilities,
		&technologies, &e.StartDate, &e.EndDate, &e.OrderIndex, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	e.Responsibilities = models.DecodeStringList(responsibilities)
	e.Technologies = models.DecodeStringList(technologies)
	return e, nil
}

// List returns experience entries in display order.
func (r *ExperienceRepo) List(ctx context.Context, filter models.ExperienceFilter) (*models.Page[models.Experience], error) {
	page, pageSize := NormalizePage(filter.Page, filter.PageSize, defaultTimelineSize)

	q := SelectQuery{
		Table:    experienceTable,
		Columns:  experienceColumns,
		OrderBy:  timelineOrder,
		Page:     page,
		PageSize: pageSize,
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		q.Where = append(q.Where, Search(term, "company", "position", "description"))
	}

	result, err := listPage(ctx, r.engine, q, scanExperience)
	if err != nil {
		return nil, fmt.Errorf("failed to list experience: %w", err)
	}
	return result, nil
}

func (r *ExperienceRepo) FindByID(ctx context.Context, id string) (*models.Experience, error) {
	return r.findByID(ctx, r.engine, id)
}

func (r *ExperienceRepo) findByID(ctx context.Context, engine Engine, id string) (*models.Experience, error) {
	stmt, args := SelectQuery{
		Table:   experienceTable,
		Columns: experienceColumns,
		Where:   []Predicate{Equals("id", id)},
	}.Build(engine.Dialect())
	return findOne(ctx, engine, "experience", stmt, args, scanExperience)
}

func (r *ExperienceRepo) Add(ctx context.Context, exp models.Experience) (*models.Experience, error) {
	if err := requireText("company", exp.Company); err != nil {
		return nil, err
	}
	if err := requireText("position", exp.Position); err != nil {
		return nil, err
	}
	if err := requireText("startDate", exp.StartDate); err != nil {
		return nil, err
	}
	if err := checkDateRange(exp.StartDate, exp.EndDate); err != nil {
		return nil, err
	}

	ts := now()
	exp.ID = uuid.NewString()
	fields := []Field{
		{Name: "id", Value: exp.ID},
		{Name: "company", Value: exp.Company},
		{Name: "position", Value: exp.Position},
		{Name: "location", Value: exp.Location},
		{Name: "description", Value: exp.Description},
		{Name: "responsibilities", Kind: KindJSON, Value: exp.Responsibilities},
		{Name: "technologies", Kind: KindJSON, Value: exp.Technologies},
		{Name: "start_date", Value: exp.StartDate},
		{Name: "end_date", Value: exp.EndDate},
		{Name: "order_index", Value: exp.OrderIndex},
		{Name: "created_at", Value: ts},
		{Name: "updated_at", Value: ts},
	}

	created, err := insertAndReload(ctx, r.engine, "experience", experienceTable, fields, func(conn Engine) (*models.Experience, error) {
		return r.findByID(ctx, conn, exp.ID)
	})
	if err != nil {
		return nil, uniqueViolation(err, "experience", "id")
	}
	r.logger.Info().Str("experienceId", created.ID).Msg("experience created")
	return created, nil
}

// Update writes the set fields of patch. A date change is checked against
// the stored counterpart when only one side is supplied, and the UPDATE
// re-checks it against the row it writes. An empty patch returns
// errs.ErrNoChanges without checking that id exists.
func (r *ExperienceRepo) Update(ctx context.Context, id string, patch models.ExperiencePatch) (*models.Experience, error) {
	if patch.Company.Set {
		if err := requireText("company", patch.Company.Value); err != nil {
			return nil, err
		}
	}
	if patch.Position.Set {
		if err := requireText("position", patch.Position.Value); err != nil {
			return nil, err
		}
	}
	if patch.StartDate.Set || patch.EndDate.Set {
		current, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		start, end := current.StartDate, current.EndDate
		if patch.StartDate.Set {
			start = patch.StartDate.Value
		}
		if patch.EndDate.Set {
			end = patch.EndDate.Value
		}
		if err := requireText("startDate", start); err != nil {
			return nil, err
		}
		if err := checkDateRange(start, end); err != nil {
			return nil, err
		}
	}

	var fields []Field
	fields = appendField(fields, "company", KindValue, patch.Company)
	fields = appendField(fields, "position", KindValue, patch.Position)
	fields = appendField(fields, "location", KindValue, patch.Location)
	fields = appendField(fields, "description", KindValue, patch.Description)
	fields = appendField(fields, "responsibilities", KindJSON, patch.Responsibilities)
	fields = appendField(fields, "technologies", KindJSON, patch.Technologies)
	fields = appendField(fields, "startDate", KindValue, patch.StartDate)
	fields = appendField(fields, "endDate", KindValue, patch.EndDate)
	fields = appendField(fields, "orderIndex", KindValue, patch.OrderIndex)

	guard := dateRangeGuard(patch.StartDate, patch.EndDate)
	return updateAndReloadIf(ctx, r.engine, "experience", experienceTable, experienceUpdateColumns, fields, id, guard, func(conn Engine) (*models.Experience, error) {
		return r.findByID(ctx, conn, id)
	})
}

func (r *ExperienceRepo) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := deleteByID(ctx, r.engine, experienceTable, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete experience: %w", err)
	}
	return deleted, nil
}
