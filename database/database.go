package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Config selects and configures the storage engine.
type Config struct {
	// Driver is "sqlite" or "postgres". "supa" is accepted as postgres.
	Driver string
	// DSN is the file path for sqlite and the connection string for postgres.
	DSN      string
	MaxConns int32
}

type Database struct {
	engine           Engine
	projectRepo      *ProjectRepo
	experienceRepo   *ExperienceRepo
	educationRepo    *EducationRepo
	blogPostRepo     *BlogPostRepo
	commentRepo      *CommentRepo
	messageRepo      *MessageRepo
	userRepo         *UserRepo
	profileRepo      *ProfileRepo
	siteSettingsRepo *SiteSettingsRepo
}

// Open connects to the configured engine, migrates the schema and returns
// the repositories bound to it. The caller owns the result and must Close it.
func Open(ctx context.Context, cfg Config) (Database, error) {
	var engine Engine

	switch strings.ToLower(cfg.Driver) {
	case "sqlite", "":
		lite, gormDB, err := openSQLite(ctx, cfg.DSN)
		if err != nil {
			return Database{}, err
		}
		if err := Migrate(gormDB); err != nil {
			_ = lite.Close()
			return Database{}, err
		}
		engine = lite
	case "postgres", "supa":
		pgEngine, gormDB, err := openPostgres(ctx, cfg.DSN, cfg.MaxConns)
		if err != nil {
			return Database{}, err
		}
		migrateErr := Migrate(gormDB)
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
		if migrateErr != nil {
			_ = pgEngine.Close()
			return Database{}, migrateErr
		}
		engine = pgEngine
	default:
		return Database{}, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	log.Info().Str("engine", engine.Dialect().Name()).Msg("database ready")
	return New(engine), nil
}

// New initializes a new Database struct with each repository sharing engine
func New(engine Engine) Database {
	return Database{
		engine:           engine,
		projectRepo:      NewProjectRepo(engine),
		experienceRepo:   NewExperienceRepo(engine),
		educationRepo:    NewEducationRepo(engine),
		blogPostRepo:     NewBlogPostRepo(engine),
		commentRepo:      NewCommentRepo(engine),
		messageRepo:      NewMessageRepo(engine),
		userRepo:         NewUserRepo(engine),
		profileRepo:      NewProfileRepo(engine),
		siteSettingsRepo: NewSiteSettingsRepo(engine),
	}
}

// Close releases the engine's connections.
func (d Database) Close() error {
	if d.engine == nil {
		return nil
	}
	return d.engine.Close()
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) EducationRepo() *EducationRepo {
	return d.educationRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) MessageRepo() *MessageRepo {
	return d.messageRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) SiteSettingsRepo() *SiteSettingsRepo {
	return d.siteSettingsRepo
}
