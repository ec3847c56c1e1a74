package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const blogPostTable = "blog_posts"

var blogPostColumns = []string{
	"id", "title", "slug", "content", "excerpt", "cover_image", "tags", "published",
	"featured", "read_time", "likes_count", "dislikes_count", "created_at", "updated_at",
}

// The slug and reaction counters are not updatable.
var blogPostUpdateColumns = map[string]string{
	"title":      "title",
	"content":    "content",
	"excerpt":    "excerpt",
	"coverImage": "cover_image",
	"tags":       "tags",
	"published":  "published",
	"featured":   "featured",
	"readTime":   "read_time",
}

type BlogPostRepo struct {
	engine Engine
	logger zerolog.Logger
}

func NewBlogPostRepo(engine Engine) *BlogPostRepo {
	return &BlogPostRepo{
		engine: engine,
		logger: log.With().Str("repo", "blogPostRepo").Logger(),
	}
}

func scanBlogPost(s scanner) (models.BlogPost, error) {
	var (
		p    models.BlogPost
		tags string
	)
	err := s.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.CoverImage, &tags, &p.Published,
		&p.Featured, &p.ReadTime, &p.LikesCount, &p.DislikesCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	p.Tags = models.DecodeStringList(tags)
	return p, nil
}

// List returns one page of blog posts, newest first.
func (r *BlogPostRepo) List(ctx context.Context, filter models.BlogPostFilter) (*models.Page[models.BlogPost], error) {
	page, pageSize := NormalizePage(filter.Page, filter.PageSize, defaultPageSize)

	q := SelectQuery{
		Table:    blogPostTable,
		Columns:  blogPostColumns,
		OrderBy:  newestFirst,
		Page:     page,
		PageSize: pageSize,
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		q.Where = append(q.Where, Search(term, "title", "excerpt", "content"))
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		q.Where = append(q.Where, HasTag("tags", tag))
	}
	if filter.Published != nil {
		q.Where = append(q.Where, Flag("published", *filter.Published))
	}
	if filter.Featured != nil {
		q.Where = append(q.Where, Flag("featured", *filter.Featured))
	}

	result, err := listPage(ctx, r.engine, q, scanBlogPost)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return result, nil
}

// FindByID returns a blog post by its ID
func (r *BlogPostRepo) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	return r.findBy(ctx, r.engine, "id", id)
}

// FindBySlug returns the blog post published under slug.
func (r *BlogPostRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return r.findBy(ctx, r.engine, "slug", slug)
}

func (r *BlogPostRepo) findBy(ctx context.Context, engine Engine, column, value string) (*models.BlogPost, error) {
	stmt, args := SelectQuery{
		Table:   blogPostTable,
		Columns: blogPostColumns,
		Where:   []Predicate{Equals(column, value)},
	}.Build(engine.Dialect())
	return findOne(ctx, engine, "blog post", stmt, args, scanBlogPost)
}

// Add inserts a new blog post. An empty slug is derived from the title,
// falling back to post-<id prefix> when the title has nothing to keep, and
// a zero read time is estimated from the content.
func (r *BlogPostRepo) Add(ctx context.Context, post models.BlogPost) (*models.BlogPost, error) {
	if err := requireText("title", post.Title); err != nil {
		return nil, err
	}
	post.ID = uuid.NewString()
	if post.Slug == "" {
		post.Slug = models.Slugify(post.Title)
	}
	// titles with no ASCII letters or digits slugify to nothing
	if post.Slug == "" {
		post.Slug = "post-" + post.ID[:8]
	}
	if !models.ValidSlug(post.Slug) {
		return nil, errs.NewInvalidFieldError("slug", "must be lowercase letters, digits and single hyphens")
	}
	if post.ReadTime <= 0 {
		post.ReadTime = models.EstimateReadTime(post.Content)
	}

	ts := now()
	fields := []Field{
		{Name: "id", Value: post.ID},
		{Name: "title", Value: post.Title},
		{Name: "slug", Value: post.Slug},
		{Name: "content", Value: post.Content},
		{Name: "excerpt", Value: post.Excerpt},
		{Name: "cover_image", Value: post.CoverImage},
		{Name: "tags", Kind: KindJSON, Value: post.Tags},
		{Name: "published", Kind: KindBool, Value: post.Published},
		{Name: "featured", Kind: KindBool, Value: post.Featured},
		{Name: "read_time", Value: post.ReadTime},
		{Name: "likes_count", Value: 0},
		{Name: "dislikes_count", Value: 0},
		{Name: "created_at", Value: ts},
		{Name: "updated_at", Value: ts},
	}

	created, err := insertAndReload(ctx, r.engine, "blog post", blogPostTable, fields, func(conn Engine) (*models.BlogPost, error) {
		return r.findBy(ctx, conn, "id", post.ID)
	})
	if err != nil {
		return nil, uniqueViolation(err, "blog post", "slug")
	}
	r.logger.Info().Str("blogPostId", created.ID).Str("slug", created.Slug).Msg("blog post created")
	return created, nil
}

// Update writes the set fields of patch. An empty patch returns
// errs.ErrNoChanges without checking that id exists.
func (r *BlogPostRepo) Update(ctx context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error) {
	if patch.Title.Set {
		if err := requireText("title", patch.Title.Value); err != nil {
			return nil, err
		}
	}
	if patch.ReadTime.Set && patch.ReadTime.Value < 1 {
		return nil, errs.NewInvalidFieldError("readTime", "must be at least 1")
	}

	var fields []Field
	fields = appendField(fields, "title", KindValue, patch.Title)
	fields = appendField(fields, "content", KindValue, patch.Content)
	fields = appendField(fields, "excerpt", KindValue, patch.Excerpt)
	fields = appendField(fields, "coverImage", KindValue, patch.CoverImage)
	fields = appendField(fields, "tags", KindJSON, patch.Tags)
	fields = appendField(fields, "published", KindBool, patch.Published)
	fields = appendField(fields, "featured", KindBool, patch.Featured)
	fields = appendField(fields, "readTime", KindValue, patch.ReadTime)

	return updateAndReload(ctx, r.engine, "blog post", blogPostTable, blogPostUpdateColumns, fields, id, func(conn Engine) (*models.BlogPost, error) {
		return r.findBy(ctx, conn, "id", id)
	})
}

// Delete removes a blog post and its comments.
func (r *BlogPostRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.engine.WithConnection(ctx, func(conn Engine) error {
		stmt := "DELETE FROM " + commentTable + " WHERE post_id = " + conn.Dialect().Placeholder(1)
		removed, err := conn.Run(ctx, stmt, id)
		if err != nil {
			return err
		}
		deleted, err = deleteByID(ctx, conn, blogPostTable, id)
		if err == nil && removed > 0 {
			r.logger.Info().Str("blogPostId", id).Int64("comments", removed).Msg("removed comments of deleted blog post")
		}
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete blog post: %w", err)
	}
	return deleted, nil
}

// IncrementReaction adds one to the like or dislike counter and returns the
// post as stored afterwards.
func (r *BlogPostRepo) IncrementReaction(ctx context.Context, id string, kind models.Reaction) (*models.BlogPost, error) {
	return incrementAndReload(ctx, r.engine, "blog post", blogPostTable, id, kind, func(conn Engine) (*models.BlogPost, error) {
		return r.findBy(ctx, conn, "id", id)
	})
}

// Tags returns every tag used by a published post, deduplicated and sorted.
func (r *BlogPostRepo) Tags(ctx context.Context) ([]string, error) {
	stmt, args := SelectQuery{
		Table:   blogPostTable,
		Columns: []string{"tags"},
		Where:   []Predicate{Flag("published", true)},
	}.Build(r.engine.Dialect())

	rows, err := r.engine.QueryAll(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	lists, err := collect(rows, func(s scanner) (models.StringList, error) {
		var text string
		if err := s.Scan(&text); err != nil {
			return nil, err
		}
		return models.DecodeStringList(text), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, list := range lists {
		for _, tag := range list {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}
