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

const commentTable = "comments"

var commentColumns = []string{
	"id", "post_id", "parent_id", "content", "author_name",
	"likes_count", "dislikes_count", "created_at",
}

// CommentRepo stores reader comments. Comments are never edited or deleted
// individually; they go away with their post.
type CommentRepo struct {
	engine Engine
	logger zerolog.Logger
}

func NewCommentRepo(engine Engine) *CommentRepo {
	return &CommentRepo{
		engine: engine,
		logger: log.With().Str("repo", "commentRepo").Logger(),
	}
}

func scanComment(s scanner) (models.Comment, error) {
	var c models.Comment
	err := s.Scan(
		&c.ID, &c.PostID, &c.ParentID, &c.Content, &c.AuthorName,
		&c.LikesCount, &c.DislikesCount, &c.CreatedAt,
	)
	return c, err
}

// ListByPost returns every comment on a post, oldest first.
func (r *CommentRepo) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	stmt, args := SelectQuery{
		Table:   commentTable,
		Columns: commentColumns,
		Where:   []Predicate{Equals("post_id", postID)},
		OrderBy: "created_at ASC, id ASC",
	}.Build(r.engine.Dialect())

	rows, err := r.engine.QueryAll(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	comments, err := collect(rows, scanComment)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// CountByPost returns how many comments a post has.
func (r *CommentRepo) CountByPost(ctx context.Context, postID string) (int, error) {
	stmt, args := SelectQuery{
		Table: commentTable,
		Where: []Predicate{Equals("post_id", postID)},
	}.BuildCount(r.engine.Dialect())

	var count int64
	if err := r.engine.QueryOne(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return int(count), nil
}

func (r *CommentRepo) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	return r.findByID(ctx, r.engine, id)
}

func (r *CommentRepo) findByID(ctx context.Context, engine Engine, id string) (*models.Comment, error) {
	stmt, args := SelectQuery{
		Table:   commentTable,
		Columns: commentColumns,
		Where:   []Predicate{Equals("id", id)},
	}.Build(engine.Dialect())
	return findOne(ctx, engine, "comment", stmt, args, scanComment)
}

// Add stores a comment on an existing post. A parent, when given, must be a
// comment on the same post.
func (r *CommentRepo) Add(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	if err := requireText("content", comment.Content); err != nil {
		return nil, err
	}
	if comment.AuthorName != nil && strings.TrimSpace(*comment.AuthorName) == "" {
		comment.AuthorName = nil
	}
	if comment.ParentID != nil && *comment.ParentID == "" {
		comment.ParentID = nil
	}

	comment.ID = uuid.NewString()
	comment.CreatedAt = now()

	var created *models.Comment
	err := r.engine.WithConnection(ctx, func(conn Engine) error {
		if err := r.checkPostExists(ctx, conn, comment.PostID); err != nil {
			return err
		}
		if comment.ParentID != nil {
			parent, err := r.findByID(ctx, conn, *comment.ParentID)
			if err != nil {
				if errs.IsNotFound(err) {
					return errs.NewInvalidFieldError("parentId", "parent comment does not exist")
				}
				return err
			}
			if parent.PostID != comment.PostID {
				return errs.NewInvalidFieldError("parentId", "parent comment belongs to another post")
			}
		}

		fields := []Field{
			{Name: "id", Value: comment.ID},
			{Name: "post_id", Value: comment.PostID},
			{Name: "parent_id", Value: comment.ParentID},
			{Name: "content", Value: comment.Content},
			{Name: "author_name", Value: comment.AuthorName},
			{Name: "likes_count", Value: 0},
			{Name: "dislikes_count", Value: 0},
			{Name: "created_at", Value: comment.CreatedAt},
		}
		var err error
		created, err = insertAndReload(ctx, conn, "comment", commentTable, fields, func(conn Engine) (*models.Comment, error) {
			return r.findByID(ctx, conn, comment.ID)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info().Str("commentId", created.ID).Str("postId", created.PostID).Msg("comment created")
	return created, nil
}

func (r *CommentRepo) checkPostExists(ctx context.Context, engine Engine, postID string) error {
	stmt, args := SelectQuery{
		Table: blogPostTable,
		Where: []Predicate{Equals("id", postID)},
	}.BuildCount(engine.Dialect())

	var count int64
	if err := engine.QueryOne(ctx, stmt, args...).Scan(&count); err != nil {
		return fmt.Errorf("failed to look up blog post: %w", err)
	}
	if count == 0 {
		return errs.NewNotFound("blog post")
	}
	return nil
}

// IncrementReaction adds one to the like or dislike counter of a comment.
func (r *CommentRepo) IncrementReaction(ctx context.Context, id string, kind models.Reaction) (*models.Comment, error) {
	return incrementAndReload(ctx, r.engine, "comment", commentTable, id, kind, func(conn Engine) (*models.Comment, error) {
		return r.findByID(ctx, conn, id)
	})
}
