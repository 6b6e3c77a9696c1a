// Package forms implements the per-entity form validators. Validation is
// pure and synchronous: each validator maps raw form input to a field-keyed
// map of user-facing messages, and an empty map means the form is valid.
// Validators always run before any store call.
package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format of the date inputs.
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps a field name to its user-facing validation message.
type Errors map[string]string

// Valid reports whether the form passed validation.
func (e Errors) Valid() bool { return len(e) == 0 }

// Form is any raw form input that can validate itself.
type Form interface {
	Validate() Errors
}

type LibraryForm struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (f LibraryForm) Validate() Errors {
	err := Errors{}
	if len(strings.TrimSpace(f.Name)) < 2 {
		err["name"] = "Nombre mínimo 2 caracteres"
	}
	if f.Address != "" && len(strings.TrimSpace(f.Address)) < 5 {
		err["address"] = "Dirección muy corta"
	}
	return err
}

type BookForm struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear string `json:"published_year"`
	Available     bool   `json:"available"`
	LibraryID     string `json:"library_id"`
}

func (f BookForm) Validate() Errors {
	err := Errors{}
	if len(strings.TrimSpace(f.Title)) < 2 {
		err["title"] = "Título mínimo 2 caracteres"
	}
	if f.LibraryID == "" {
		err["library_id"] = "Selecciona una librería"
	}
	if year := strings.TrimSpace(f.PublishedYear); year != "" {
		if !isFourDigits(year) {
			err["published_year"] = "Año debe ser 4 dígitos"
		} else {
			y, _ := strconv.Atoi(year)
			current := time.Now().Year()
			if y < 1000 || y > current {
				err["published_year"] = fmt.Sprintf("Año entre 1000 y %d", current)
			}
		}
	}
	if isbn := strings.TrimSpace(f.ISBN); isbn != "" {
		if !validISBN(isbn) {
			err["isbn"] = "ISBN debe ser 10 o 13 dígitos"
		}
	}
	return err
}

type LoanForm struct {
	BookID     string `json:"book_id"`
	BorrowerID string `json:"borrower_id"`
	LibraryID  string `json:"library_id"`
	LoanDate   string `json:"loan_date"`
	ReturnDate string `json:"return_date"`
	Returned   bool   `json:"returned"`
}

func (f LoanForm) Validate() Errors {
	err := Errors{}
	if f.BookID == "" {
		err["book_id"] = "Selecciona un libro"
	}
	if f.LibraryID == "" {
		err["library_id"] = "Selecciona una librería"
	}
	if f.BorrowerID == "" {
		err["borrower_id"] = "Selecciona un usuario"
	}
	start := strings.TrimSpace(f.LoanDate)
	end := strings.TrimSpace(f.ReturnDate)
	if start == "" {
		err["loan_date"] = "Fecha de préstamo requerida"
	}
	if end == "" {
		err["return_date"] = "Fecha de devolución requerida"
	}
	if start != "" && end != "" {
		s, sErr := time.Parse(DateLayout, start)
		e, eErr := time.Parse(DateLayout, end)
		switch {
		case sErr != nil || eErr != nil:
			err["date"] = "Fechas inválidas"
		case e.Before(s):
			err["return_date"] = "Devolución debe ser posterior al préstamo"
		}
	}
	return err
}

type ProfileForm struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func (f ProfileForm) Validate() Errors {
	err := Errors{}
	if len(strings.TrimSpace(f.FullName)) < 2 {
		err["full_name"] = "Nombre mínimo 2 caracteres"
	}
	if email := strings.TrimSpace(f.Email); email != "" {
		if !emailPattern.MatchString(email) {
			err["email"] = "Email inválido"
		}
	}
	return err
}

type MemberForm struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Active   *bool  `json:"active"`
}

func (f MemberForm) Validate() Errors {
	err := Errors{}
	email := strings.TrimSpace(f.Email)
	if email == "" {
		err["email"] = "Email requerido"
	} else if !emailPattern.MatchString(email) {
		err["email"] = "Email inválido"
	}
	if strings.TrimSpace(f.FullName) == "" {
		err["full_name"] = "Nombre requerido"
	}
	return err
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// validISBN checks shape only, after stripping hyphens: ISBN-13 is thirteen
// digits, ISBN-10 is ten characters of digits with an optional trailing X
// check character. The checksum itself is not verified.
func validISBN(isbn string) bool {
	clean := strings.ReplaceAll(isbn, "-", "")
	switch len(clean) {
	case 13:
		for _, c := range clean {
			if c < '0' || c > '9' {
				return false
			}
		}
		return true
	case 10:
		for i, c := range clean {
			if c >= '0' && c <= '9' {
				continue
			}
			if i == 9 && (c == 'X' || c == 'x') {
				continue
			}
			return false
		}
		return true
	default:
		return false
	}
}
