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

type BooksController struct {
	repo *database.Repository[entities.Book]
}

func NewBooksController(repo *database.Repository[entities.Book]) *BooksController {
	return &BooksController{repo: repo}
}

// flow builds the save state machine for one request. The in-flight guard
// is scoped to a single submission; unrelated clients are never coordinated
// at this layer.
func (bc *BooksController) flow() *flows.Flow[forms.BookForm, entities.Book] {
	return flows.New(bc.save)
}

func (bc *BooksController) save(ctx context.Context, id string, f forms.BookForm) (*entities.Book, error) {
	if id == "" {
		return bc.repo.Create(ctx, &entities.Book{
			Title:         f.Title,
			Author:        f.Author,
			ISBN:          f.ISBN,
			PublishedYear: f.PublishedYear,
			Available:     f.Available,
			LibraryID:     f.LibraryID,
		})
	}
	return bc.repo.Update(ctx, id, entities.BookPatch{
		Title:         &f.Title,
		Author:        &f.Author,
		ISBN:          &f.ISBN,
		PublishedYear: &f.PublishedYear,
		Available:     &f.Available,
		LibraryID:     &f.LibraryID,
	})
}

func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.repo.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, books)
}

func (bc *BooksController) Get(c *gin.Context) {
	book, err := bc.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BooksController) Create(c *gin.Context) {
	var form forms.BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondSaveResult(c, "", bc.flow().Run(c.Request.Context(), "", form))
}

func (bc *BooksController) Update(c *gin.Context) {
	var form forms.BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	id := c.Param("id")
	respondSaveResult(c, id, bc.flow().Run(c.Request.Context(), id, form))
}

func (bc *BooksController) Delete(c *gin.Context) {
	err := flows.ConfirmedDelete(c.Request.Context(), confirmed(c), func(ctx context.Context) error {
		return bc.repo.Delete(ctx, c.Param("id"))
	})
	respondDeleteResult(c, err)
}
