// Package forms validates submitted note and account data before anything is
// persisted.
package forms

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"

	"github.com/notemark/notemark/internal/database"
)

// WARNING is appended to a rejected duplicate slug in validation errors.
const WARNING = " - такой адрес заменить невозможно, добавьте уникальное значение, либо оставьте это поле пустым и оно будет сгенерировано автоматически"

const (
	// MaxTitleLen is the maximum number of characters in a note title.
	MaxTitleLen = 100
	// MaxSlugLen is the maximum number of characters in a note slug.
	MaxSlugLen = 100

	requiredMsg = "Обязательное поле."
	slugMsg     = "Недопустимый адрес: разрешены только латинские буквы, цифры, дефис и подчёркивание."
)

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Slugify derives a URL-safe slug from a title. Non-Latin titles are
// transliterated, so "Заголовок" becomes "zagolovok".
func Slugify(title string) string {
	s := slug.Make(title)
	if len(s) > MaxSlugLen {
		s = strings.Trim(s[:MaxSlugLen], "-")
	}
	return s
}

// NoteForm carries the submitted note fields and their validation errors.
type NoteForm struct {
	Title string
	Text  string
	Slug  string

	// Errors maps a field name to its validation error, filled by Validate.
	Errors map[string]string
}

// Validate checks the form fields and the slug uniqueness against the store.
// excludeID is the ID of the note being edited, 0 when creating a new one.
// It returns true when the form is valid; the returned error reports storage
// failures only, not validation failures.
func (f *NoteForm) Validate(ctx context.Context, db database.DB, excludeID uint) (bool, error) {
	f.Errors = make(map[string]string)

	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		f.Errors["title"] = requiredMsg
	} else if utf8.RuneCountInString(f.Title) > MaxTitleLen {
		f.Errors["title"] = fmt.Sprintf("Убедитесь, что это значение содержит не более %d символов.", MaxTitleLen)
	}

	if strings.TrimSpace(f.Text) == "" {
		f.Errors["text"] = requiredMsg
	}

	f.Slug = strings.TrimSpace(f.Slug)
	if f.Slug == "" {
		if f.Title != "" && Slugify(f.Title) == "" {
			f.Errors["slug"] = "Не удалось сгенерировать адрес из заголовка, укажите его явно."
		}
	} else {
		switch {
		case len(f.Slug) > MaxSlugLen:
			f.Errors["slug"] = fmt.Sprintf("Убедитесь, что это значение содержит не более %d символов.", MaxSlugLen)
		case !slugRe.MatchString(f.Slug):
			f.Errors["slug"] = slugMsg
		default:
			taken, err := db.SlugTaken(ctx, f.Slug, excludeID)
			if err != nil {
				return false, err
			}
			if taken {
				f.Errors["slug"] = f.Slug + WARNING
			}
		}
	}

	return len(f.Errors) == 0, nil
}

// FinalSlug returns the explicit slug if one was submitted, otherwise the
// slug derived from the title. The derived slug skips the collision check in
// Validate; the storage unique index still guards it.
func (f *NoteForm) FinalSlug() string {
	if f.Slug != "" {
		return f.Slug
	}
	return Slugify(f.Title)
}
