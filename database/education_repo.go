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

const educationTable = "education"

var educationColumns = []string{
	"id", "degree", "institution", "field_of_study", "location", "start_date", "end_date",
	"description", "achievements", "courses", "order_index", "created_at", "updated_at",
}

var educationUpdateColumns = map[string]string{
	"degree":       "degree",
	"institution":  "institution",
	"fieldOfStudy": "field_of_study",
	"location":     "location",
	"startDate":    "start_date",
	"endDate":      "end_date",
	"description":  "description",
	"achievements": "achievements",
	"courses":      "courses",
	"orderIndex":   "order_index",
}

type EducationRepo struct {
	engine Engine
	logger zerolog.Logger
}

func NewEducationRepo(engine Engine) *EducationRepo {
	return &EducationRepo{
		engine: engine,
		logger: log.With().Str("repo", "educationRepo").Logger(),
	}
}

func scanEducation(s scanner) (models.Education, error) {
	var (
		e                                  models.Education
		description, achievements, courses string
	)
	err := s.Scan(
		&e.ID, &e.Degree, &e.Institution, &e.FieldOfStudy, &e.Location, &e.StartDate, &e.EndDate,
		&description, &achievements, &courses, &e.OrderIndex, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}
	e.Description = models.DecodeStringList(description)
	e.Achievements = models.DecodeStringList(achievements)
	e.Courses = models.DecodeStringList(courses)
	return e, nil
}

// List returns education entries in display order.
func (r *EducationRepo) List(ctx context.Context, filter models.EducationFilter) (*models.Page[models.Education], error) {
	page, pageSize := NormalizePage(filter.Page, filter.PageSize, defaultTimelineSize)

	q := SelectQuery{
		Table:    educationTable,
		Columns:  educationColumns,
		OrderBy:  timelineOrder,
		Page:     page,
		PageSize: pageSize,
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		q.Where = append(q.Where, Search(term, "degree", "institution", "location"))
	}

	result, err := listPage(ctx, r.engine, q, scanEducation)
	if err != nil {
		return nil, fmt.Errorf("failed to list education: %w", err)
	}
	return result, nil
}

func (r *EducationRepo) FindByID(ctx context.Context, id string) (*models.Education, error) {
	return r.findByID(ctx, r.engine, id)
}

func (r *EducationRepo) findByID(ctx context.Context, engine Engine, id string) (*models.Education, error) {
	stmt, args := SelectQuery{
		Table:   educationTable,
		Columns: educationColumns,
		Where:   []Predicate{Equals("id", id)},
	}.Build(engine.Dialect())
	return findOne(ctx, engine, "education", stmt, args, scanEducation)
}

func (r *EducationRepo) Add(ctx context.Context, edu models.Education) (*models.Education, error) {
	if err := requireText("degree", edu.Degree); err != nil {
		return nil, err
	}
	if err := requireText("institution", edu.Institution); err != nil {
		return nil, err
	}
	if err := requireText("startDate", edu.StartDate); err != nil {
		return nil, err
	}
	if err := checkDateRange(edu.StartDate, edu.EndDate); err != nil {
		return nil, err
	}

	ts := now()
	edu.ID = uuid.NewString()
	fields := []Field{
		{Name: "id", Value: edu.ID},
		{Name: "degree", Value: edu.Degree},
		{Name: "institution", Value: edu.Institution},
		{Name: "field_of_study", Value: edu.FieldOfStudy},
		{Name: "location", Value: edu.Location},
		{Name: "start_date", Value: edu.StartDate},
		{Name: "end_date", Value: edu.EndDate},
		{Name: "description", Kind: KindJSON, Value: edu.Description},
		{Name: "achievements", Kind: KindJSON, Value: edu.Achievements},
		{Name: "courses", Kind: KindJSON, Value: edu.Courses},
		{Name: "order_index", Value: edu.OrderIndex},
		{Name: "created_at", Value: ts},
		{Name: "updated_at", Value: ts},
	}

	created, err := insertAndReload(ctx, r.engine, "education", educationTable, fields, func(conn Engine) (*models.Education, error) {
		return r.findByID(ctx, conn, edu.ID)
	})
	if err != nil {
		return nil, uniqueViolation(err, "education", "id")
	}
	r.logger.Info().Str("educationId", created.ID).Msg("education created")
	return created, nil
}

// Update writes the set fields of patch. A date change is checked against
// the stored counterpart when only one side is supplied, and the UPDATE
// re-checks it against the row it writes. An empty patch returns
// errs.ErrNoChanges without checking that id exists.
func (r *EducationRepo) Update(ctx context.Context, id string, patch models.EducationPatch) (*models.Education, error) {
	if patch.Degree.Set {
		if err := requireText("degree", patch.Degree.Value); err != nil {
			return nil, err
		}
	}
	if patch.Institution.Set {
		if err := requireText("institution", patch.Institution.Value); err != nil {
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
	fields = appendField(fields, "degree", KindValue, patch.Degree)
	fields = appendField(fields, "institution", KindValue, patch.Institution)
	fields = appendField(fields, "fieldOfStudy", KindValue, patch.FieldOfStudy)
	fields = appendField(fields, "location", KindValue, patch.Location)
	fields = appendField(fields, "startDate", KindValue, patch.StartDate)
	fields = appendField(fields, "endDate", KindValue, patch.EndDate)
	fields = appendField(fields, "description", KindJSON, patch.Description)
	fields = appendField(fields, "achievements", KindJSON, patch.Achievements)
	fields = appendField(fields, "courses", KindJSON, patch.Courses)
	fields = appendField(fields, "orderIndex", KindValue, patch.OrderIndex)

	guard := dateRangeGuard(patch.StartDate, patch.EndDate)
	return updateAndReloadIf(ctx, r.engine, "education", educationTable, educationUpdateColumns, fields, id, guard, func(conn Engine) (*models.Education, error) {
		return r.findByID(ctx, conn, id)
	})
}

func (r *EducationRepo) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := deleteByID(ctx, r.engine, educationTable, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete education: %w", err)
	}
	return deleted, nil
}
