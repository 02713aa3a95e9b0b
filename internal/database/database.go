package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var _ DB = (*Client)(nil) // Ensure Client implements DB

// Sentinel errors returned by the database layer.
var (
	// ErrNotFound is returned when a record does not exist. For notes this
	// also covers records owned by a different user, so callers cannot tell
	// a foreign note from a missing one.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateSlug is returned when a note write violates the unique
	// slug constraint.
	ErrDuplicateSlug = errors.New("slug already exists")
	// ErrDuplicateUsername is returned when a user write violates the
	// unique username constraint.
	ErrDuplicateUsername = errors.New("username already exists")
)

// DB defines the interface for database operations.
type DB interface {
	// User management
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	CountUsers(ctx context.Context) (int64, error)

	// Note management
	CreateNote(ctx context.Context, note *Note) error
	ListNotesByAuthor(ctx context.Context, authorID uint) ([]Note, error)
	GetNoteBySlug(ctx context.Context, authorID uint, slug string) (*Note, error)
	UpdateNote(ctx context.Context, note *Note) error
	DeleteNote(ctx context.Context, note *Note) error
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	CountNotes(ctx context.Context) (int64, error)
	DeleteAllNotes(ctx context.Context) (int64, error)

	// Utility
	Close() error
}

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&Note{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateError maps gorm and sqlite driver errors to the package sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		switch {
		case strings.Contains(err.Error(), "notes.slug"):
			return ErrDuplicateSlug
		case strings.Contains(err.Error(), "users.username"):
			return ErrDuplicateUsername
		}
	}
	return err
}
