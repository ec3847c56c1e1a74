package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type commentHandler struct {
	responder    Responder
	logger       zerolog.Logger
	commentRepo  *database.CommentRepo
	blogPostRepo *database.BlogPostRepo
}

func newCommentHandler(commentRepo *database.CommentRepo, blogPostRepo *database.BlogPostRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		commentRepo:  commentRepo,
		blogPostRepo: blogPostRepo,
	}
}

// commentRequest is the body accepted when a reader posts a comment.
type commentRequest struct {
	Content    string  `json:"content"`
	AuthorName *string `json:"authorName"`
	ParentID   *string `json:"parentId"`
}

// getComments returns the comment thread of a post
// @Summary List comments as a tree
// @Tags Comments
// @Produce json
// @Param blogPostID path string true "Blog post ID" format(uuid)
// @Success 200 {array} models.CommentNode
// @Router /blog-post/{blogPostID}/comments [get]
func (h commentHandler) getComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.blogPostRepo.FindByID(r.Context(), blogPostID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		comments, err := h.commentRepo.ListByPost(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		h.responder.WriteJSON(w, models.BuildCommentTree(comments))
	}
}

// createComment adds a comment or reply to a post
// @Summary Create comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param blogPostID path string true "Blog post ID" format(uuid)
// @Param comment body commentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Router /blog-post/{blogPostID}/comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req commentRequest
		if err := decodeBody(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.commentRepo.Add(r.Context(), models.Comment{
			PostID:     blogPostID,
			ParentID:   req.ParentID,
			Content:    req.Content,
			AuthorName: req.AuthorName,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, comment)
	}
}

// reactToComment records a like or dislike on a comment
// @Summary React to comment
// @Tags Comments
// @Accept json
// @Produce json
// @Param commentID path string true "Comment ID" format(uuid)
// @Param reaction body reactionRequest true "Reaction"
// @Success 200 {object} models.Comment
// @Router /comment/{commentID}/reactions [post]
func (h commentHandler) reactToComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := pathID(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		reaction, err := decodeReaction(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		comment, err := h.commentRepo.IncrementReaction(r.Context(), commentID, reaction)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("react to", "comment", err))
			return
		}

		h.responder.WriteJSON(w, comment)
	}
}
