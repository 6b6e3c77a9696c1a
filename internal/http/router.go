package http

import (
	"github.com/gin-gonic/gin"

	"github.com/avaldes/biblioteca/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Middleware order matters: CSRF runs before the session loader so the
// session context is not overwritten by CSRF's request replacement, and the
// gate runs last so it sees a loaded session.
//
// The returned stop function releases background resources held by the
// route handlers, currently the login rate limiter. Callers invoke it on
// shutdown.
func NewRouter(cfg RouterConfig) (*gin.Engine, func()) {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// Apply CSRF protection if auth is enabled
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Apply session middleware if enabled
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Apply the session gate if enabled
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	// Sign-in / sign-out / sign-up
	stop := func() {}
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.AuthConfig)
		authController.RegisterRoutes(router)
		stop = authController.Stop
	}

	// Health endpoint
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	repos := cfg.Repositories

	// Libraries
	libraries := NewLibrariesController(repos.Libraries)
	router.GET("/api/libraries", libraries.List)
	router.GET("/api/libraries/:id", libraries.Get)
	router.POST("/api/libraries", libraries.Create)
	router.PUT("/api/libraries/:id", libraries.Update)
	router.DELETE("/api/libraries/:id", libraries.Delete)

	// Books
	books := NewBooksController(repos.Books)
	router.GET("/api/books", books.List)
	router.GET("/api/books/:id", books.Get)
	router.POST("/api/books", books.Create)
	router.PUT("/api/books/:id", books.Update)
	router.DELETE("/api/books/:id", books.Delete)

	// Loans
	loans := NewLoansController(repos.Loans)
	router.GET("/api/loans", loans.List)
	router.GET("/api/loans/:id", loans.Get)
	router.POST("/api/loans", loans.Create)
	router.PUT("/api/loans/:id", loans.Update)
	router.DELETE("/api/loans/:id", loans.Delete)

	// Members, plus the privileged quick-create endpoint
	members := NewMembersController(repos.Members)
	router.GET("/api/members", members.List)
	router.GET("/api/members/:id", members.Get)
	router.POST("/api/members", members.Create)
	router.PUT("/api/members/:id", members.Update)
	router.DELETE("/api/members/:id", members.Delete)
	router.POST("/api/members/create", members.CreateMember)

	// Profiles. The caller's own row is served at /api/profile; profile rows
	// are only created through upsert or the users/create endpoint.
	profiles := NewProfilesController(repos.Profiles)
	router.GET("/api/profiles", profiles.List)
	router.GET("/api/profiles/:id", profiles.Get)
	router.DELETE("/api/profiles/:id", profiles.Delete)
	router.GET("/api/profile", profiles.GetOwn)
	router.PUT("/api/profile", profiles.SaveOwn)

	// Privileged user creation
	if cfg.AuthService != nil {
		users := NewUsersController(cfg.AuthService, repos.Profiles)
		router.POST("/api/users/create", users.CreateUser)
	}

	return router, stop
}
