package api

import (
	"github.com/rpupo63/portfolio-site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database) *routeHandlers {
	return &routeHandlers{
		projectHandler:    newProjectHandler(database.ProjectRepo()),
		experienceHandler: newExperienceHandler(database.ExperienceRepo()),
		educationHandler:  newEducationHandler(database.EducationRepo()),
		blogPostHandler:   newBlogPostHandler(database.BlogPostRepo()),
		commentHandler:    newCommentHandler(database.CommentRepo(), database.BlogPostRepo()),
		messageHandler:    newMessageHandler(database.MessageRepo()),
		profileHandler:    newProfileHandler(database.ProfileRepo(), database.SiteSettingsRepo()),
	}
}
