package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lune/internal/api/middleware"
	"lune/internal/api/service"
	"lune/internal/config"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *AuthHandler
	Media       *MediaHandler
	Library     *LibraryHandler
	Collections *CollectionHandler
	Social      *SocialHandler
}

// SetupRouter builds the gin engine with all API routes mounted under /api.
func SetupRouter(cfg *config.Config, h Handlers, authService service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthMiddleware(authService)

	api := r.Group("/api")
	{
		h.Auth.RegisterRoutes(api.Group("/auth"), authRequired)
		h.Media.RegisterRoutes(api.Group("/media"))

		library := api.Group("/library")
		library.Use(authRequired)
		h.Library.RegisterRoutes(library)

		collections := api.Group("/collections")
		collections.Use(authRequired)
		h.Collections.RegisterRoutes(collections)

		users := api.Group("/users")
		users.Use(authRequired)
		h.Social.RegisterRoutes(users)
	}

	return r
}
