package http

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avaldes/biblioteca/internal/database"
	"github.com/avaldes/biblioteca/internal/entities"
	"github.com/avaldes/biblioteca/internal/flows"
	"github.com/avaldes/biblioteca/internal/forms"
)

type MembersController struct {
	repo *database.Repository[entities.Member]
}

func NewMembersController(repo *database.Repository[entities.Member]) *MembersController {
	return &MembersController{repo: repo}
}

// flow builds the save state machine for one request.
func (mc *MembersController) flow() *flows.Flow[forms.MemberForm, entities.Member] {
	return flows.New(mc.save)
}

func (mc *MembersController) save(ctx context.Context, id string, f forms.MemberForm) (*entities.Member, error) {
	active := true
	if f.Active != nil {
		active = *f.Active
	}
	if id == "" {
		return mc.repo.Create(ctx, &entities.Member{
			FullName: f.FullName,
			Email:    f.Email,
			Phone:    f.Phone,
			Active:   active,
		})
	}
	return mc.repo.Update(ctx, id, entities.MemberPatch{
		FullName: &f.FullName,
		Email:    &f.Email,
		Phone:    &f.Phone,
		Active:   &active,
	})
}

func (mc *MembersController) List(c *gin.Context) {
	members, err := mc.repo.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list members")
		return
	}
	c.JSON(http.StatusOK, members)
}

func (mc *MembersController) Get(c *gin.Context) {
	member, err := mc.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "get member")
		return
	}
	if member == nil {
		respondNotFound(c, "member")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (mc *MembersController) Create(c *gin.Context) {
	var form forms.MemberForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondSaveResult(c, "", mc.flow().Run(c.Request.Context(), "", form))
}

func (mc *MembersController) Update(c *gin.Context) {
	var form forms.MemberForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	id := c.Param("id")
	respondSaveResult(c, id, mc.flow().Run(c.Request.Context(), id, form))
}

func (mc *MembersController) Delete(c *gin.Context) {
	err := flows.ConfirmedDelete(c.Request.Context(), confirmed(c), func(ctx context.Context) error {
		return mc.repo.Delete(ctx, c.Param("id"))
	})
	respondDeleteResult(c, err)
}

// CreateMember is the privileged quick-create endpoint. It answers with a
// minimal {ok, id} envelope instead of the full record.
func (mc *MembersController) CreateMember(c *gin.Context) {
	var form forms.MemberForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if strings.TrimSpace(form.FullName) == "" || strings.TrimSpace(form.Email) == "" {
		respondBadRequest(c, "Nombre y email son requeridos")
		return
	}
	if errs := form.Validate(); !errs.Valid() {
		respondValidationErrors(c, errs)
		return
	}

	res := mc.flow().Run(c.Request.Context(), "", form)
	if res.Err != nil {
		log.Printf("Member create failed: %v", res.Err)
		respondBadRequest(c, res.Err.Error())
		return
	}
	if res.Invalid != nil {
		respondValidationErrors(c, res.Invalid)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": res.Record.ID})
}
