package entities

import "time"

// Library is a branch managed by a librarian. OwnerID is stamped once at
// creation from the authenticated session and is never part of an update
// payload; the store's access policy keys on it.
type Library struct {
	Base
	Name    string `gorm:"size:255;not null;index" json:"name"`
	Address string `gorm:"size:512" json:"address,omitempty"`
	Phone   string `gorm:"size:50" json:"phone,omitempty"`
	OwnerID string `gorm:"size:36;index" json:"owner_id,omitempty"`
}

func (Library) TableName() string { return "libraries" }

// Book belongs to exactly one library.
type Book struct {
	Base
	Title         string `gorm:"size:512;not null;index" json:"title"`
	Author        string `gorm:"size:256" json:"author,omitempty"`
	ISBN          string `gorm:"size:17;column:isbn" json:"isbn,omitempty"`
	PublishedYear string `gorm:"size:4" json:"published_year,omitempty"`
	Available     bool   `gorm:"not null;default:true" json:"available"`
	LibraryID     string `gorm:"size:36;not null;index" json:"library_id"`
}

func (Book) TableName() string { return "books" }

// Loan records a book lent to a member. ReturnDate is nullable in the
// model even though the form requires it; the creation form has always
// demanded both dates.
type Loan struct {
	Base
	BookID     string     `gorm:"size:36;not null;index" json:"book_id"`
	BorrowerID string     `gorm:"size:36;not null;index" json:"borrower_id"`
	LibraryID  string     `gorm:"size:36;not null;index" json:"library_id"`
	LoanDate   time.Time  `gorm:"not null" json:"loan_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Returned   bool       `gorm:"not null;default:false" json:"returned"`
}

func (Loan) TableName() string { return "loans" }

// Profile is the librarian's own record. Its ID equals the owning user's
// ID, so a profile may not exist yet for an already-authenticated identity;
// writes go through upsert.
type Profile struct {
	Base
	FullName string `gorm:"size:255" json:"full_name,omitempty"`
	Email    string `gorm:"size:255" json:"email,omitempty"`
}

func (Profile) TableName() string { return "profiles" }

// Member is a registered borrower.
type Member struct {
	Base
	FullName string `gorm:"size:255" json:"full_name,omitempty"`
	Email    string `gorm:"size:255" json:"email,omitempty"`
	Phone    string `gorm:"size:50" json:"phone,omitempty"`
	Active   bool   `gorm:"not null;default:true" json:"active"`
}

func (Member) TableName() string { return "members" }
