//go:build integration
// +build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"
)

// newPostgresTestDB starts a PostgreSQL container and opens a migrated
// Database on it.
func newPostgresTestDB(t *testing.T) Database {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("portfolio"),
		postgres.WithUsername("portfolio"),
		postgres.WithPassword("portfolio"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, Config{Driver: "postgres", DSN: connStr, MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgresRepositories(t *testing.T) {
	stepClock(t)
	db := newPostgresTestDB(t)
	ctx := context.Background()

	t.Run("search pagination", func(t *testing.T) {
		repo := db.ProjectRepo()
		created := seedProjects(t, repo)

		page, err := repo.List(ctx, models.ProjectFilter{Search: "chat", Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalCount)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Items, 2)
		assert.Equal(t, created[4].ID, page.Items[0].ID)

		featured, err := repo.List(ctx, models.ProjectFilter{Featured: ptr(true)})
		require.NoError(t, err)
		assert.Equal(t, 1, featured.TotalCount)
	})

	t.Run("blog posts", func(t *testing.T) {
		repo := db.BlogPostRepo()

		post, err := repo.Add(ctx, models.BlogPost{Title: "Native JSON", Tags: models.StringList{"pg", "json"}, Published: true})
		require.NoError(t, err)
		assert.Equal(t, models.StringList{"pg", "json"}, post.Tags)

		_, err = repo.Add(ctx, models.BlogPost{Title: "Native JSON"})
		assert.True(t, errs.IsUniqueConstraintViolationError(err))

		tagged, err := repo.List(ctx, models.BlogPostFilter{Tag: "pg"})
		require.NoError(t, err)
		assert.Equal(t, 1, tagged.TotalCount)

		tags, err := repo.Tags(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"json", "pg"}, tags)

		const n = 20
		var g errgroup.Group
		for i := 0; i < n; i++ {
			g.Go(func() error {
				_, err := repo.IncrementReaction(ctx, post.ID, models.ReactionLike)
				return err
			})
		}
		require.NoError(t, g.Wait())

		found, err := repo.FindBySlug(ctx, post.Slug)
		require.NoError(t, err)
		assert.Equal(t, n, found.LikesCount)
	})

	t.Run("site settings", func(t *testing.T) {
		repo := db.SiteSettingsRepo()

		saved, err := repo.Upsert(ctx, models.SiteSettingsPatch{
			NavLinks:        models.Some(models.LinkMap{"Blog": "/blog"}),
			MaintenanceMode: models.Some(true),
		})
		require.NoError(t, err)
		assert.Equal(t, models.LinkMap{"Blog": "/blog"}, saved.NavLinks)
		assert.True(t, saved.MaintenanceMode)
		assert.True(t, saved.ShowBlog)
	})
}
