package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes registers the routes visitors can reach. Requests that
// carry a valid admin token are marked so drafts become visible.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.identify)

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())

		r.Get("/experiences", handlers.experienceHandler.getAllExperiences())
		r.Get("/experience/{experienceID}", handlers.experienceHandler.getExperience())

		r.Get("/education", handlers.educationHandler.getAllEducation())
		r.Get("/education/{educationID}", handlers.educationHandler.getEducation())

		r.Get("/blog-posts", handlers.blogPostHandler.getAllBlogPosts())
		r.Get("/blog-posts/tags", handlers.blogPostHandler.getTags())
		r.Get("/blog-post/{blogPostID}", handlers.blogPostHandler.getBlogPost())
		r.Get("/blog-post/slug/{slug}", handlers.blogPostHandler.getBlogPostBySlug())
		r.Post("/blog-post/{blogPostID}/reactions", handlers.blogPostHandler.reactToBlogPost())

		r.Get("/blog-post/{blogPostID}/comments", handlers.commentHandler.getComments())
		r.Post("/blog-post/{blogPostID}/comments", handlers.commentHandler.createComment())
		r.Post("/comment/{commentID}/reactions", handlers.commentHandler.reactToComment())

		r.Post("/message", handlers.messageHandler.createMessage())

		r.Get("/profile", handlers.profileHandler.getProfile())
		r.Get("/settings", handlers.profileHandler.getSiteSettings())
	})
}

// setupAdminRoutes registers the routes that change content or expose
// private data. All of them require the backend password as a bearer token.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

		r.Post("/experience", handlers.experienceHandler.createExperience())
		r.Put("/experience/{experienceID}", handlers.experienceHandler.updateExperience())
		r.Delete("/experience/{experienceID}", handlers.experienceHandler.deleteExperience())

		r.Post("/education", handlers.educationHandler.createEducation())
		r.Put("/education/{educationID}", handlers.educationHandler.updateEducation())
		r.Delete("/education/{educationID}", handlers.educationHandler.deleteEducation())

		r.Post("/blog-post", handlers.blogPostHandler.createBlogPost())
		r.Put("/blog-post/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/blog-post/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())

		r.Get("/messages", handlers.messageHandler.getAllMessages())
		r.Get("/messages/unread-count", handlers.messageHandler.getUnreadCount())
		r.Get("/message/{messageID}", handlers.messageHandler.getMessage())
		r.Put("/message/{messageID}", handlers.messageHandler.updateMessage())
		r.Delete("/message/{messageID}", handlers.messageHandler.deleteMessage())

		r.Put("/profile", handlers.profileHandler.updateProfile())
		r.Put("/settings", handlers.profileHandler.updateSiteSettings())
	})
}
