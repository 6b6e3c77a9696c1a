package entities

import "time"

// Patch projects a partial update onto the columns it touches. Each entity
// has its own patch type listing only its mutable fields, so immutable
// columns (id, created_at, owner_id) cannot appear in an update by
// construction. A nil pointer means "leave the column alone".
type Patch interface {
	Changes() map[string]any
}

type LibraryPatch struct {
	Name    *string
	Address *string
	Phone   *string
}

func (p LibraryPatch) Changes() map[string]any {
	m := map[string]any{}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Address != nil {
		m["address"] = *p.Address
	}
	if p.Phone != nil {
		m["phone"] = *p.Phone
	}
	return m
}

type BookPatch struct {
	Title         *string
	Author        *string
	ISBN          *string
	PublishedYear *string
	Available     *bool
	LibraryID     *string
}

func (p BookPatch) Changes() map[string]any {
	m := map[string]any{}
	if p.Title != nil {
		m["title"] = *p.Title
	}
	if p.Author != nil {
		m["author"] = *p.Author
	}
	if p.ISBN != nil {
		m["isbn"] = *p.ISBN
	}
	if p.PublishedYear != nil {
		m["published_year"] = *p.PublishedYear
	}
	if p.Available != nil {
		m["available"] = *p.Available
	}
	if p.LibraryID != nil {
		m["library_id"] = *p.LibraryID
	}
	return m
}

type LoanPatch struct {
	BookID     *string
	BorrowerID *string
	LibraryID  *string
	LoanDate   *time.Time
	ReturnDate **time.Time // outer nil: untouched; inner nil: cleared
	Returned   *bool
}

func (p LoanPatch) Changes() map[string]any {
	m := map[string]any{}
	if p.BookID != nil {
		m["book_id"] = *p.BookID
	}
	if p.BorrowerID != nil {
		m["borrower_id"] = *p.BorrowerID
	}
	if p.LibraryID != nil {
		m["library_id"] = *p.LibraryID
	}
	if p.LoanDate != nil {
		m["loan_date"] = *p.LoanDate
	}
	if p.ReturnDate != nil {
		m["return_date"] = *p.ReturnDate
	}
	if p.Returned != nil {
		m["returned"] = *p.Returned
	}
	return m
}

type ProfilePatch struct {
	FullName *string
	Email    *string
}

func (p ProfilePatch) Changes() map[string]any {
	m := map[string]any{}
	if p.FullName != nil {
		m["full_name"] = *p.FullName
	}
	if p.Email != nil {
		m["email"] = *p.Email
	}
	return m
}

type MemberPatch struct {
	FullName *string
	Email    *string
	Phone    *string
	Active   *bool
}

func (p MemberPatch) Changes() map[string]any {
	m := map[string]any{}
	if p.FullName != nil {
		m["full_name"] = *p.FullName
	}
	if p.Email != nil {
		m["email"] = *p.Email
	}
	if p.Phone != nil {
		m["phone"] = *p.Phone
	}
	if p.Active != nil {
		m["active"] = *p.Active
	}
	return m
}
