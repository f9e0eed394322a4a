package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kutuphane/locallibrary/internal/middleware"
)

// Handlers bundles everything SetupRoutes mounts.
type Handlers struct {
	Dashboard *DashboardHandler
	Authors   *AuthorHandler
	Books     *BookHandler
	Genres    *GenreHandler
	Instances *BookInstanceHandler
	Users     *UserHandler
}

// SetupRoutes mounts the full HTTP surface. The catalog group runs
// behind the authorization gate; create routes are registered before
// the bare :id routes so the literal segment "create" is never taken
// for an identifier.
func SetupRoutes(router *gin.Engine, h *Handlers, authorizer *middleware.Authorizer, loginLimiter *middleware.LoginLimiter) {
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog")
	})

	catalog := router.Group("/catalog", authorizer.Gate())
	{
		catalog.GET("", h.Dashboard.Home)

		catalog.GET("/authors", h.Authors.List)
		catalog.GET("/author/create", h.Authors.CreateGet)
		catalog.POST("/author/create", h.Authors.CreatePost)
		catalog.GET("/author/:id", h.Authors.Detail)
		catalog.GET("/author/:id/update", h.Authors.UpdateGet)
		catalog.POST("/author/:id/update", h.Authors.UpdatePost)
		catalog.GET("/author/:id/delete", h.Authors.DeleteGet)
		catalog.POST("/author/:id/delete", h.Authors.DeletePost)

		catalog.GET("/books", h.Books.List)
		catalog.GET("/book/create", h.Books.CreateGet)
		catalog.POST("/book/create", h.Books.CreatePost)
		catalog.GET("/book/:id", h.Books.Detail)
		catalog.GET("/book/:id/update", h.Books.UpdateGet)
		catalog.POST("/book/:id/update", h.Books.UpdatePost)
		catalog.GET("/book/:id/delete", h.Books.DeleteGet)
		catalog.POST("/book/:id/delete", h.Books.DeletePost)

		catalog.GET("/genres", h.Genres.List)
		catalog.GET("/genre/create", h.Genres.CreateGet)
		catalog.POST("/genre/create", h.Genres.CreatePost)
		catalog.GET("/genre/:id", h.Genres.Detail)
		catalog.GET("/genre/:id/update", h.Genres.UpdateGet)
		catalog.POST("/genre/:id/update", h.Genres.UpdatePost)
		catalog.GET("/genre/:id/delete", h.Genres.DeleteGet)
		catalog.POST("/genre/:id/delete", h.Genres.DeletePost)

		catalog.GET("/bookinstances", h.Instances.List)
		catalog.GET("/bookinstance/create", h.Instances.CreateGet)
		catalog.POST("/bookinstance/create", h.Instances.CreatePost)
		catalog.GET("/bookinstance/:id", h.Instances.Detail)
		catalog.GET("/bookinstance/:id/update", h.Instances.UpdateGet)
		catalog.POST("/bookinstance/:id/update", h.Instances.UpdatePost)
		catalog.GET("/bookinstance/:id/delete", h.Instances.DeleteGet)
		catalog.POST("/bookinstance/:id/delete", h.Instances.DeletePost)
	}

	users := router.Group("/users")
	{
		users.GET("/login", h.Users.LoginGet)
		users.POST("/login", loginLimiter.Middleware(), h.Users.LoginPost)
		users.GET("/logout", h.Users.LogoutGet)
		users.GET("/register", h.Users.RegisterGet)
		users.POST("/register", h.Users.RegisterPost)
		users.GET("/reset", h.Users.ResetGet)
		users.POST("/reset", h.Users.ResetPost)
		users.POST("/resetfinal", h.Users.ResetFinalPost)
		users.GET("/stop", h.Users.Warning)
		users.GET("/:id", h.Users.Profile)
		users.GET("/:id/update", h.Users.UpdateGet)
		users.POST("/:id/update", h.Users.UpdatePost)
	}

	router.NoRoute(func(c *gin.Context) {
		renderNotFound(c)
	})
}
