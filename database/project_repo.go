package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const projectTable = "projects"

var projectColumns = []string{
	"id", "title", "description", "long_description", "technologies",
	"image_url", "github_url", "live_url", "featured", "category",
	"created_at", "updated_at",
}

// projectUpdateColumns maps the logical patch names onto stored columns.
var projectUpdateColumns = map[string]string{
	"title":           "title",
	"description":     "description",
	"longDescription": "long_description",
	"technologies":    "technologies",
	"imageUrl":        "image_url",
	"githubUrl":       "github_url",
	"liveUrl":         "live_url",
	"featured":        "featured",
	"category":        "category",
}

type ProjectRepo struct {
	engine Engine
	logger zerolog.Logger
}

func NewProjectRepo(engine Engine) *ProjectRepo {
	return &ProjectRepo{
		engine: engine,
		logger: log.With().Str("repo", "projectRepo").Logger(),
	}
}

func scanProject(s scanner) (models.Project, error) {
	var (
		p            models.Project
		technologies string
		category     string
	)
	err := s.Scan(
		&p.ID, &p.Title, &p.Description, &p.LongDescription, &technologies,
		&p.ImageURL, &p.GithubURL, &p.LiveURL, &p.Featured, &category,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	p.Technologies = models.DecodeStringList(technologies)
	p.Category = models.ProjectCategory(category)
	return p, nil
}

// List returns one page of projects, newest first.
func (r *ProjectRepo) List(ctx context.Context, filter models.ProjectFilter) (*models.Page[models.Project], error) {
	page, pageSize := NormalizePage(filter.Page, filter.PageSize, defaultPageSize)

	q := SelectQuery{
		Table:    projectTable,
		Columns:  projectColumns,
		OrderBy:  newestFirst,
		Page:     page,
		PageSize: pageSize,
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		q.Where = append(q.Where, Search(term, "title", "description", "long_description"))
	}
	if filter.Category != "" {
		q.Where = append(q.Where, Equals("category", filter.Category))
	}
	if filter.Featured != nil {
		q.Where = append(q.Where, Flag("featured", *filter.Featured))
	}

	result, err := listPage(ctx, r.engine, q, scanProject)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return result, nil
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id string) (*models.Project, error) {
	return r.findByID(ctx, r.engine, id)
}

func (r *ProjectRepo) findByID(ctx context.Context, engine Engine, id string) (*models.Project, error) {
	stmt, args := SelectQuery{
		Table:   projectTable,
		Columns: projectColumns,
		Where:   []Predicate{Equals("id", id)},
	}.Build(engine.Dialect())
	return findOne(ctx, engine, "project", stmt, args, scanProject)
}

// Add inserts a new project and returns it as stored.
func (r *ProjectRepo) Add(ctx context.Context, project models.Project) (*models.Project, error) {
	if project.Category == "" {
		project.Category = models.ProjectCategoryOther
	}
	if err := validateProject(project.Title, project.Category); err != nil {
		return nil, err
	}

	ts := now()
	project.ID = uuid.NewString()
	fields := []Field{
		{Name: "id", Value: project.ID},
		{Name: "title", Value: project.Title},
		{Name: "description", Value: project.Description},
		{Name: "long_description", Value: project.LongDescription},
		{Name: "technologies", Kind: KindJSON, Value: project.Technologies},
		{Name: "image_url", Value: project.ImageURL},
		{Name: "github_url", Value: project.GithubURL},
		{Name: "live_url", Value: project.LiveURL},
		{Name: "featured", Kind: KindBool, Value: project.Featured},
		{Name: "category", Value: string(project.Category)},
		{Name: "created_at", Value: ts},
		{Name: "updated_at", Value: ts},
	}

	created, err := insertAndReload(ctx, r.engine, "project", projectTable, fields, func(conn Engine) (*models.Project, error) {
		return r.findByID(ctx, conn, project.ID)
	})
	if err != nil {
		return nil, uniqueViolation(err, "project", "id")
	}
	r.logger.Info().Str("projectId", created.ID).Msg("project created")
	return created, nil
}

// Update writes the set fields of patch. An empty patch returns
// errs.ErrNoChanges without checking that id exists.
func (r *ProjectRepo) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	if patch.Title.Set {
		if err := requireText("title", patch.Title.Value); err != nil {
			return nil, err
		}
	}
	if patch.Category.Set && !patch.Category.Value.Valid() {
		return nil, errs.NewInvalidFieldError("category", "unknown category")
	}

	var fields []Field
	fields = appendField(fields, "title", KindValue, patch.Title)
	fields = appendField(fields, "description", KindValue, patch.Description)
	fields = appendField(fields, "longDescription", KindValue, patch.LongDescription)
	fields = appendField(fields, "technologies", KindJSON, patch.Technologies)
	fields = appendField(fields, "imageUrl", KindValue, patch.ImageURL)
	fields = appendField(fields, "githubUrl", KindValue, patch.GithubURL)
	fields = appendField(fields, "liveUrl", KindValue, patch.LiveURL)
	fields = appendField(fields, "featured", KindBool, patch.Featured)
	fields = appendField(fields, "category", KindValue, models.Optional[string]{
		Value: string(patch.Category.Value),
		Set:   patch.Category.Set,
	})

	return updateAndReload(ctx, r.engine, "project", projectTable, projectUpdateColumns, fields, id, func(conn Engine) (*models.Project, error) {
		return r.findByID(ctx, conn, id)
	})
}

// Delete removes a project by id and reports whether it existed.
func (r *ProjectRepo) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := deleteByID(ctx, r.engine, projectTable, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	return deleted, nil
}

func validateProject(title string, category models.ProjectCategory) error {
	if err := requireText("title", title); err != nil {
		return err
	}
	if !category.Valid() {
		return errs.NewInvalidFieldError("category", "unknown category")
	}
	return nil
}
