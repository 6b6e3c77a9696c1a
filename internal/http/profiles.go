package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avaldes/biblioteca/internal/database"
	"github.com/avaldes/biblioteca/internal/entities"
	"github.com/avaldes/biblioteca/internal/flows"
	"github.com/avaldes/biblioteca/internal/forms"
)

// ProfilesController serves the librarian profile rows. A profile shares its
// ID with the owning user and may not exist yet for a valid session, so the
// caller's own row is written through upsert rather than create-or-update.
type ProfilesController struct {
	repo *database.Repository[entities.Profile]
}

func NewProfilesController(repo *database.Repository[entities.Profile]) *ProfilesController {
	return &ProfilesController{repo: repo}
}

// flow builds the save state machine for one request.
func (pc *ProfilesController) flow() *flows.Flow[forms.ProfileForm, entities.Profile] {
	return flows.New(pc.save)
}

// save always takes the upsert path: the id is the session user's ID, never
// an auto-generated one.
func (pc *ProfilesController) save(ctx context.Context, id string, f forms.ProfileForm) (*entities.Profile, error) {
	return pc.repo.Upsert(ctx, &entities.Profile{
		Base:     entities.Base{ID: id},
		FullName: f.FullName,
		Email:    f.Email,
	})
}

func (pc *ProfilesController) List(c *gin.Context) {
	profiles, err := pc.repo.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list profiles")
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (pc *ProfilesController) Get(c *gin.Context) {
	profile, err := pc.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "get profile")
		return
	}
	if profile == nil {
		respondNotFound(c, "profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetOwn returns the caller's profile row, or 404 when it has not been
// created yet.
func (pc *ProfilesController) GetOwn(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}
	profile, err := pc.repo.Get(c.Request.Context(), userID)
	if err != nil {
		respondInternalError(c, err, "get own profile")
		return
	}
	if profile == nil {
		respondNotFound(c, "profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveOwn upserts the caller's profile row keyed on the session identity.
func (pc *ProfilesController) SaveOwn(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var form forms.ProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondSaveResult(c, userID, pc.flow().Run(c.Request.Context(), userID, form))
}

func (pc *ProfilesController) Delete(c *gin.Context) {
	err := flows.ConfirmedDelete(c.Request.Context(), confirmed(c), func(ctx context.Context) error {
		return pc.repo.Delete(ctx, c.Param("id"))
	})
	respondDeleteResult(c, err)
}
