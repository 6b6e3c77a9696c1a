package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avaldes/biblioteca/internal/auth"
	"github.com/avaldes/biblioteca/internal/database"
	"github.com/avaldes/biblioteca/internal/entities"
)

// UsersController is the privileged user-creation endpoint. It creates the
// auth identity with the email pre-confirmed and then inserts the linked
// profile row. A profile failure after the identity exists is reported as a
// 201 with a warning, never rolled back.
type UsersController struct {
	authService *auth.Service
	profiles    *database.Repository[entities.Profile]
}

func NewUsersController(authService *auth.Service, profiles *database.Repository[entities.Profile]) *UsersController {
	return &UsersController{
		authService: authService,
		profiles:    profiles,
	}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (uc *UsersController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondBadRequest(c, "Email y contraseña son requeridos")
		return
	}

	user, err := uc.authService.CreateUser(req.Email, req.Password, req.FullName, true)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	profile := &entities.Profile{
		Base:     entities.Base{ID: user.ID},
		FullName: req.FullName,
		Email:    req.Email,
	}
	if _, err := uc.profiles.Upsert(c.Request.Context(), profile); err != nil {
		log.Printf("User %s created but profile insert failed: %v", user.ID, err)
		c.JSON(http.StatusCreated, gin.H{
			"warning": "Usuario creado, pero falló crear perfil",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "userId": user.ID})
}
