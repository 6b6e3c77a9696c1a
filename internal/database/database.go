package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avaldes/biblioteca/internal/entities"
)

// ErrNotConfigured is returned when the database path is missing at
// startup. Construction fails fast instead of deferring to the first query.
var ErrNotConfigured = errors.New("database path is not configured")

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	if dbPath == "" {
		return nil, ErrNotConfigured
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Profile{},
		&entities.Library{},
		&entities.Book{},
		&entities.Loan{},
		&entities.Member{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the underlying connection is alive.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Repositories bundles one repository per collection. Profile upserts only
// touch the mutable profile columns so a conflicting write cannot clobber
// the creation timestamp.
type Repositories struct {
	Libraries *Repository[entities.Library]
	Books     *Repository[entities.Book]
	Loans     *Repository[entities.Loan]
	Profiles  *Repository[entities.Profile]
	Members   *Repository[entities.Member]
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Libraries: NewRepository[entities.Library](db),
		Books:     NewRepository[entities.Book](db),
		Loans:     NewRepository[entities.Loan](db),
		Profiles:  NewRepository[entities.Profile](db, "full_name", "email"),
		Members:   NewRepository[entities.Member](db),
	}
}
