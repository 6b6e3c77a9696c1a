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

// ownerKey carries the session identity into the save path, where the
// library create stamps it. Updates never touch the owner column.
type ownerKey struct{}

type LibrariesController struct {
	repo *database.Repository[entities.Library]
}

func NewLibrariesController(repo *database.Repository[entities.Library]) *LibrariesController {
	return &LibrariesController{repo: repo}
}

// flow builds the save state machine for one request. The in-flight guard
// is scoped to a single submission, like the form it models; unrelated
// clients are never coordinated at this layer.
func (lc *LibrariesController) flow() *flows.Flow[forms.LibraryForm, entities.Library] {
	return flows.New(lc.save)
}

func (lc *LibrariesController) save(ctx context.Context, id string, f forms.LibraryForm) (*entities.Library, error) {
	if id == "" {
		owner, _ := ctx.Value(ownerKey{}).(string)
		return lc.repo.Create(ctx, &entities.Library{
			Name:    f.Name,
			Address: f.Address,
			Phone:   f.Phone,
			OwnerID: owner,
		})
	}
	return lc.repo.Update(ctx, id, entities.LibraryPatch{
		Name:    &f.Name,
		Address: &f.Address,
		Phone:   &f.Phone,
	})
}

func (lc *LibrariesController) List(c *gin.Context) {
	libraries, err := lc.repo.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list libraries")
		return
	}
	c.JSON(http.StatusOK, libraries)
}

func (lc *LibrariesController) Get(c *gin.Context) {
	library, err := lc.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "get library")
		return
	}
	if library == nil {
		respondNotFound(c, "library")
		return
	}
	c.JSON(http.StatusOK, library)
}

func (lc *LibrariesController) Create(c *gin.Context) {
	var form forms.LibraryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	ctx := context.WithValue(c.Request.Context(), ownerKey{}, GetUserID(c))
	respondSaveResult(c, "", lc.flow().Run(ctx, "", form))
}

func (lc *LibrariesController) Update(c *gin.Context) {
	var form forms.LibraryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	id := c.Param("id")
	respondSaveResult(c, id, lc.flow().Run(c.Request.Context(), id, form))
}

func (lc *LibrariesController) Delete(c *gin.Context) {
	err := flows.ConfirmedDelete(c.Request.Context(), confirmed(c), func(ctx context.Context) error {
		return lc.repo.Delete(ctx, c.Param("id"))
	})
	respondDeleteResult(c, err)
}
