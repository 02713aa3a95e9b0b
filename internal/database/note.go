package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Note represents a note in the database.
// The slug is unique across all notes and the author reference is set at
// creation and never reassigned.
type Note struct {
	gorm.Model
	Title    string `gorm:"size:100;not null"`
	Text     string `gorm:"not null"`
	Slug     string `gorm:"size:100;uniqueIndex;not null"`
	AuthorID uint   `gorm:"index;not null"`
}

func (c *Client) CreateNote(ctx context.Context, note *Note) error {
	if err := c.db.WithContext(ctx).Create(note).Error; err != nil {
		err = translateError(err)
		if err != ErrDuplicateSlug {
			log.Error("failed to create note", "error", err)
		}
		return err
	}
	return nil
}

func (c *Client) ListNotesByAuthor(ctx context.Context, authorID uint) ([]Note, error) {
	var notes []Note
	if err := c.db.WithContext(ctx).Where("author_id = ?", authorID).Order("id").Find(&notes).Error; err != nil {
		log.Error("failed to list notes", "error", err)
		return nil, err
	}
	return notes, nil
}

// GetNoteBySlug looks a note up by slug, scoped to the given author.
// A note owned by someone else yields ErrNotFound, same as a missing slug.
func (c *Client) GetNoteBySlug(ctx context.Context, authorID uint, slug string) (*Note, error) {
	var note Note
	if err := c.db.WithContext(ctx).Where("slug = ? AND author_id = ?", slug, authorID).First(&note).Error; err != nil {
		err = translateError(err)
		if err != ErrNotFound {
			log.Error("failed to get note by slug", "error", err)
		}
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, note *Note) error {
	if err := c.db.WithContext(ctx).Save(note).Error; err != nil {
		err = translateError(err)
		if err != ErrDuplicateSlug {
			log.Error("failed to update note", "error", err)
		}
		return err
	}
	return nil
}

func (c *Client) DeleteNote(ctx context.Context, note *Note) error {
	if err := c.db.WithContext(ctx).Unscoped().Delete(note).Error; err != nil {
		log.Error("failed to delete note", "error", err)
		return err
	}
	return nil
}

// SlugTaken reports whether a note other than excludeID already uses the
// slug. Pass 0 for excludeID when creating a new note.
func (c *Client) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	q := c.db.WithContext(ctx).Model(&Note{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		log.Error("failed to check slug", "error", err)
		return false, err
	}
	return count > 0, nil
}

func (c *Client) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&Note{}).Count(&count).Error; err != nil {
		log.Error("failed to count notes", "error", err)
		return 0, err
	}
	return count, nil
}

// DeleteAllNotes removes every note and returns the number of deleted rows.
func (c *Client) DeleteAllNotes(ctx context.Context) (int64, error) {
	res := c.db.WithContext(ctx).Unscoped().Where("1 = 1").Delete(&Note{})
	if res.Error != nil {
		log.Error("failed to delete notes", "error", res.Error)
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
