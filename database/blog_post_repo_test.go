package database

import (
	"context"
	"testing"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestBlogPostRepoAddDerivesSlugAndReadTime(t *testing.T) {
	repo := newTestDB(t).BlogPostRepo()

	post, err := repo.Add(context.Background(), models.BlogPost{
		Title:   "Hello, World: Go & SQL!",
		Content: "short body",
		Tags:    models.StringList{"go", "sql"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-go-sql", post.Slug)
	assert.Equal(t, 1, post.ReadTime)
	assert.Equal(t, models.StringList{"go", "sql"}, post.Tags)
	assert.Zero(t, post.LikesCount)
	assert.Zero(t, post.DislikesCount)
}

func TestBlogPostRepoAddNonASCIITitle(t *testing.T) {
	repo := newTestDB(t).BlogPostRepo()
	ctx := context.Background()

	post, err := repo.Add(ctx, models.BlogPost{Title: "你好世界", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "post-"+post.ID[:8], post.Slug)
	assert.True(t, models.ValidSlug(post.Slug))

	found, err := repo.FindBySlug(ctx, post.Slug)
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)

	other, err := repo.Add(ctx, models.BlogPost{Title: "¿¡…!?", Content: "body"})
	require.NoError(t, err)
	assert.NotEqual(t, post.Slug, other.Slug)
}

func TestBlogPostRepoRejectsInvalidSlug(t *testing.T) {
	repo := newTestDB(t).BlogPostRepo()

	_, err := repo.Add(context.Background(), models.BlogPost{Title: "T", Slug: "Not A Slug"})
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestBlogPostRepoSlugUniqueness(t *testing.T) {
	repo := newTestDB(t).BlogPostRepo()
	ctx := context.Background()

	first, err := repo.Add(ctx, models.BlogPost{Title: "First", Slug: "same-slug", Content: "original"})
	require.NoError(t, err)

	_, err = repo.Add(ctx, models.BlogPost{Title: "Second", Slug: "same-slug", Content: "impostor"})
	require.Error(t, err)
	assert.True(t, errs.IsUniqueConstraintViolationError(err))

	found, err := repo.FindBySlug(ctx, "same-slug")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	assert.Equal(t, "original", found.Content)
}

func TestBlogPostRepoFindBySlugMissing(t *testing.T) {
	repo := newTestDB(t).BlogPostRepo()

	_, err := repo.FindBySlug(context.Background(), "nope")
	assert.True(t, errs.IsNotFound(err))
}

func TestBlogPostRepoDislikeIncrements(t *testing.T) {
	repo := newTestDB(t).BlogPostRepo()
	ctx := context.Background()

	post, err := repo.Add(ctx, models.BlogPost{Title: "Reactions"})
	require.NoError(t, err)

	once, err := repo.IncrementReaction(ctx, post.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, 1, once.DislikesCount)
	assert.Equal(t, 0, once.LikesCount)

	twice, err := repo.IncrementReaction(ctx, post.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, 2, twice.DislikesCount)
}

func TestBlogPostRepoConcurrentLikes(t *testing.T) {
	repo := newTestDB(t).BlogPostRepo()
	ctx := context.Background()

	post, err := repo.Add(ctx, models.BlogPost{Title: "Popular"})
	require.NoError(t, err)

	const n = 25
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := repo.IncrementReaction(ctx, post.ID, models.ReactionLike)
			return err
		})
	}
	require.NoError(t, g.Wait())

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, n, found.LikesCount)
}

func TestBlogPostRepoIncrementErrors(t *testing.T) {
	repo := newTestDB(t).BlogPostRepo()
	ctx := context.Background()

	_, err := repo.IncrementReaction(ctx, "missing", models.ReactionLike)
	assert.True(t, errs.IsNotFound(err))

	post, err := repo.Add(ctx, models.BlogPost{Title: "Post"})
	require.NoError(t, err)
	_, err = repo.IncrementReaction(ctx, post.ID, models.Reaction("love"))
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestBlogPostRepoListFilters(t *testing.T) {
	stepClock(t)
	repo := newTestDB(t).BlogPostRepo()
	ctx := context.Background()

	_, err := repo.Add(ctx, models.BlogPost{Title: "Go tips", Tags: models.StringList{"go"}, Published: true})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.BlogPost{Title: "SQL tips", Tags: models.StringList{"sql", "go"}, Published: true, Featured: true})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.BlogPost{Title: "Draft", Tags: models.StringList{"rust"}})
	require.NoError(t, err)

	published, err := repo.List(ctx, models.BlogPostFilter{Published: ptr(true)})
	require.NoError(t, err)
	require.Equal(t, 2, published.TotalCount)
	assert.Equal(t, "SQL tips", published.Items[0].Title)

	tagged, err := repo.List(ctx, models.BlogPostFilter{Tag: "go"})
	require.NoError(t, err)
	assert.Equal(t, 2, tagged.TotalCount)

	featured, err := repo.List(ctx, models.BlogPostFilter{Featured: ptr(true), Search: "tips"})
	require.NoError(t, err)
	require.Equal(t, 1, featured.TotalCount)
	assert.Equal(t, "SQL tips", featured.Items[0].Title)
}

func TestBlogPostRepoTags(t *testing.T) {
	repo := newTestDB(t).BlogPostRepo()
	ctx := context.Background()

	tags, err := repo.Tags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = repo.Add(ctx, models.BlogPost{Title: "A", Tags: models.StringList{"sql", "go"}, Published: true})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.BlogPost{Title: "B", Tags: models.StringList{"go", "api"}, Published: true})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.BlogPost{Title: "C", Tags: models.StringList{"secret"}})
	require.NoError(t, err)

	tags, err = repo.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "go", "sql"}, tags)
}

func TestBlogPostRepoUpdateKeepsSlug(t *testing.T) {
	repo := newTestDB(t).BlogPostRepo()
	ctx := context.Background()

	post, err := repo.Add(ctx, models.BlogPost{Title: "Original title"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, post.ID, models.BlogPostPatch{
		Title:     models.Some("Renamed"),
		Published: models.Some(true),
		Tags:      models.Some(models.StringList{}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "original-title", updated.Slug)
	assert.True(t, updated.Published)
	assert.Empty(t, updated.Tags)

	_, err = repo.Update(ctx, post.ID, models.BlogPostPatch{})
	assert.True(t, errs.IsNoChanges(err))
}

func TestBlogPostRepoDeleteRemovesComments(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	post, err := db.BlogPostRepo().Add(ctx, models.BlogPost{Title: "Threaded"})
	require.NoError(t, err)
	_, err = db.CommentRepo().Add(ctx, models.Comment{PostID: post.ID, Content: "first"})
	require.NoError(t, err)

	deleted, err := db.BlogPostRepo().Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	count, err := db.CommentRepo().CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
