package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

// reactionRequest is the body of a reaction endpoint.
type reactionRequest struct {
	Type models.Reaction `json:"type"`
}

func decodeReaction(w http.ResponseWriter, r *http.Request) (models.Reaction, error) {
	var req reactionRequest
	if err := decodeBody(w, r, &req); err != nil {
		return "", err
	}
	if !req.Type.Valid() {
		return "", errs.NewInvalidFieldError("type", "must be like or dislike")
	}
	return req.Type, nil
}

// getAllBlogPosts lists blog posts. Visitors only ever see published posts.
// @Summary List blog posts
// @Tags Blog Posts
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param search query string false "Text search"
// @Param tag query string false "Tag"
// @Param published query bool false "Published filter (admin only)"
// @Param featured query bool false "Featured only"
// @Success 200 {object} models.Page[models.BlogPost]
// @Router /blog-posts [get]
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, pageSize, err := pageParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		published, err := queryBool(r, "published")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		featured, err := queryBool(r, "featured")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !ctxIsAdmin(r.Context()) {
			onlyPublished := true
			published = &onlyPublished
		}

		posts, err := h.blogPostRepo.List(r.Context(), models.BlogPostFilter{
			Page:      page,
			PageSize:  pageSize,
			Search:    r.URL.Query().Get("search"),
			Tag:       r.URL.Query().Get("tag"),
			Published: published,
			Featured:  featured,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getTags lists the tags of published posts
// @Summary List blog tags
// @Tags Blog Posts
// @Produce json
// @Success 200 {array} string
// @Router /blog-posts/tags [get]
func (h blogPostHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.blogPostRepo.Tags(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog tags", err))
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

// visible hides drafts from visitors.
func (h blogPostHandler) visible(r *http.Request, post *models.BlogPost) error {
	if !post.Published && !ctxIsAdmin(r.Context()) {
		return errs.NewNotFound("blog post")
	}
	return nil
}

// getBlogPost retrieves a blog post by ID
// @Summary Get blog post
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog post ID" format(uuid)
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse
// @Router /blog-post/{blogPostID} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
		if err == nil {
			err = h.visible(r, post)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// getBlogPostBySlug retrieves a blog post by its slug
// @Summary Get blog post by slug
// @Tags Blog Posts
// @Produce json
// @Param slug path string true "Slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse
// @Router /blog-post/slug/{slug} [get]
func (h blogPostHandler) getBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if !models.ValidSlug(slug) {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		post, err := h.blogPostRepo.FindBySlug(r.Context(), slug)
		if err == nil {
			err = h.visible(r, post)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// createBlogPost creates a new blog post
// @Summary Create blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPost body models.BlogPost true "Blog post data"
// @Success 201 {object} models.BlogPost
// @Failure 409 {object} ErrorResponse "Slug already in use"
// @Router /blog-post [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var post models.BlogPost
		if err := decodeBody(w, r, &post); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.blogPostRepo.Add(r.Context(), post)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog post", err))
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, created)
	}
}

// updateBlogPost applies a partial update. The slug cannot be changed.
// @Summary Update blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPostID path string true "Blog post ID" format(uuid)
// @Param blogPost body models.BlogPostPatch true "Fields to change"
// @Success 200 {object} models.BlogPost
// @Router /blog-post/{blogPostID} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.BlogPostPatch
		if err := decodeBody(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.Update(r.Context(), blogPostID, patch)
		if errs.IsNoChanges(err) {
			post, err = h.blogPostRepo.FindByID(r.Context(), blogPostID)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deleteBlogPost removes a blog post and its comments
// @Summary Delete blog post
// @Tags Blog Posts
// @Param blogPostID path string true "Blog post ID" format(uuid)
// @Success 204
// @Router /blog-post/{blogPostID} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.blogPostRepo.Delete(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog post", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("blog post"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// reactToBlogPost records a like or dislike
// @Summary React to blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPostID path string true "Blog post ID" format(uuid)
// @Param reaction body reactionRequest true "Reaction"
// @Success 200 {object} models.BlogPost
// @Router /blog-post/{blogPostID}/reactions [post]
func (h blogPostHandler) reactToBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := pathID(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		reaction, err := decodeReaction(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.IncrementReaction(r.Context(), blogPostID, reaction)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("react to", "blog post", err))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}
