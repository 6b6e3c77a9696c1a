package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avaldes/biblioteca/internal/config"
)

// isLocalPath validates that a redirect path is local to prevent open
// redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	// Protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") {
		return false
	}
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to "/".
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/"
}

// AuthController handles the sign-in/sign-up/sign-out endpoints. Auth
// errors are surfaced inline on the response; they never redirect.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	config         config.Auth
	rateLimiter    *RateLimiter
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, cfg config.Auth) *AuthController {
	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		config:         cfg,
		rateLimiter:    rateLimiter,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ac.LoginStatus)
	router.POST("/login", ac.Login)
	router.POST("/logout", ac.Logout)
	router.GET("/logout", ac.Logout) // simple logout links
	router.POST("/register", ac.Register)
}

// Stop cleans up the rate limiter's background goroutine.
func (ac *AuthController) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

type credentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	FullName string `json:"full_name" form:"full_name"`
	Next     string `json:"-" form:"next"`
}

// LoginStatus is the target of the gate's redirect. It reports whether the
// caller already holds a session and hands out the CSRF token that the
// login form (or any later mutation) must echo back.
// GET /login
func (ac *AuthController) LoginStatus(c *gin.Context) {
	if ac.sessionManager != nil {
		if data := ac.sessionManager.GetSessionData(c.Request); data != nil {
			c.JSON(http.StatusOK, gin.H{
				"authenticated": true,
				"user": gin.H{
					"id":    data.UserID,
					"email": data.Email,
				},
				"csrf_token": GetCSRFToken(c),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": false,
		"csrf_token":    GetCSRFToken(c),
	})
}

// Login handles the sign-in-with-password submission.
// POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	clientIP := c.ClientIP()

	if ac.rateLimiter != nil {
		allowed, retryAfter := ac.rateLimiter.Allow(clientIP, req.Email)
		if !allowed {
			c.Header("Retry-After", retryAfter.String())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many login attempts, please try again later",
			})
			return
		}
	}

	user, err := ac.service.Authenticate(req.Email, req.Password)
	if err != nil {
		if ac.rateLimiter != nil {
			ac.rateLimiter.RecordFailure(clientIP, req.Email)
		}

		errorMsg := "invalid email or password"
		if errors.Is(err, ErrAccountLocked) {
			errorMsg = "account is locked, please try again later"
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": errorMsg})
		return
	}

	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(clientIP, req.Email)
	}

	if ac.sessionManager != nil {
		if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}
	}

	if req.Next != "" {
		c.Redirect(http.StatusFound, sanitizeRedirectPath(req.Next))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// Logout destroys the session.
// POST /logout (GET also accepted for plain links)
func (ac *AuthController) Logout(c *gin.Context) {
	if ac.sessionManager != nil {
		_ = ac.sessionManager.DestroySession(c.Request)
	}
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// Register handles self-service sign-up. The linked profile row is not
// created here: profiles are provisioned lazily through the upsert path,
// which is why that path exists at all.
// POST /register
func (ac *AuthController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := ac.service.CreateUser(req.Email, req.Password, req.FullName, false)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrUserExists):
			status = http.StatusConflict
		case errors.Is(err, ErrEmailRequired),
			errors.Is(err, ErrPasswordRequired),
			errors.Is(err, ErrEmailInvalid),
			errors.Is(err, ErrPasswordTooShort),
			errors.Is(err, ErrPasswordTooLong):
			// validation failures keep 400
		default:
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if ac.sessionManager != nil {
		_ = ac.sessionManager.CreateSession(c.Request, user)
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok": true,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}
