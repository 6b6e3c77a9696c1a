package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avaldes/biblioteca/internal/database"
	"github.com/avaldes/biblioteca/internal/entities"
	"github.com/avaldes/biblioteca/internal/flows"
	"github.com/avaldes/biblioteca/internal/forms"
)

type LoansController struct {
	repo *database.Repository[entities.Loan]
}

func NewLoansController(repo *database.Repository[entities.Loan]) *LoansController {
	return &LoansController{repo: repo}
}

// flow builds the save state machine for one request.
func (lc *LoansController) flow() *flows.Flow[forms.LoanForm, entities.Loan] {
	return flows.New(lc.save)
}

// save runs after validation, so both dates are present and parseable.
func (lc *LoansController) save(ctx context.Context, id string, f forms.LoanForm) (*entities.Loan, error) {
	loanDate, err := time.Parse(forms.DateLayout, f.LoanDate)
	if err != nil {
		return nil, err
	}
	returnDate, err := time.Parse(forms.DateLayout, f.ReturnDate)
	if err != nil {
		return nil, err
	}

	if id == "" {
		return lc.repo.Create(ctx, &entities.Loan{
			BookID:     f.BookID,
			BorrowerID: f.BorrowerID,
			LibraryID:  f.LibraryID,
			LoanDate:   loanDate,
			ReturnDate: &returnDate,
			Returned:   f.Returned,
		})
	}

	ret := &returnDate
	return lc.repo.Update(ctx, id, entities.LoanPatch{
		BookID:     &f.BookID,
		BorrowerID: &f.BorrowerID,
		LibraryID:  &f.LibraryID,
		LoanDate:   &loanDate,
		ReturnDate: &ret,
		Returned:   &f.Returned,
	})
}

func (lc *LoansController) List(c *gin.Context) {
	loans, err := lc.repo.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list loans")
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (lc *LoansController) Get(c *gin.Context) {
	loan, err := lc.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "get loan")
		return
	}
	if loan == nil {
		respondNotFound(c, "loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (lc *LoansController) Create(c *gin.Context) {
	var form forms.LoanForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondSaveResult(c, "", lc.flow().Run(c.Request.Context(), "", form))
}

func (lc *LoansController) Update(c *gin.Context) {
	var form forms.LoanForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	id := c.Param("id")
	respondSaveResult(c, id, lc.flow().Run(c.Request.Context(), id, form))
}

func (lc *LoansController) Delete(c *gin.Context) {
	err := flows.ConfirmedDelete(c.Request.Context(), confirmed(c), func(ctx context.Context) error {
		return lc.repo.Delete(ctx, c.Param("id"))
	})
	respondDeleteResult(c, err)
}
