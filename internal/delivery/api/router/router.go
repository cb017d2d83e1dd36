// Package router wires the HTTP routes to their handlers.
package router

import (
	"storeapi/internal/delivery/api/middleware"
	"storeapi/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	PostHandler    *handler.PostHandler
	UploadHandler  *handler.UploadHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	postHandler    *handler.PostHandler
	uploadHandler  *handler.UploadHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		postHandler:    params.PostHandler,
		uploadHandler:  params.UploadHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.authMiddleware.Authenticate

	e.GET("/health", handler.HealthCheck)

	// Accounts
	e.POST("/register", r.userHandler.Register)
	e.POST("/token", r.userHandler.Token)
	e.GET("/confirm/:token", r.userHandler.Confirm)

	// Posts
	e.GET("/post", r.postHandler.ListPosts)
	e.POST("/post", r.postHandler.CreatePost, auth)
	e.GET("/post/:id", r.postHandler.GetPost)
	e.PUT("/post/:id", r.postHandler.UpdatePost, auth)
	e.DELETE("/post/:id", r.postHandler.DeletePost, auth)
	e.GET("/post/:id/comment", r.postHandler.ListComments)
	e.GET("/user/:id/posts", r.postHandler.ListUserPosts)

	e.POST("/comment", r.postHandler.CreateComment, auth)
	e.POST("/like", r.postHandler.CreateLike, auth)

	// Images
	e.POST("/upload", r.uploadHandler.Upload, auth)
	e.GET("/uploads/*", r.uploadHandler.Serve)
}
