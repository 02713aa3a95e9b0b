// Package handler contains the HTTP handlers for the note pages.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notemark/notemark/internal/api/models"
	"github.com/notemark/notemark/internal/database"
	"github.com/notemark/notemark/internal/forms"
)

// SuccessPath is where successful note mutations redirect to.
const SuccessPath = "/notes/success"

// Handler serves the note endpoints.
type Handler struct {
	db database.DB
}

func New(db database.DB) *Handler {
	return &Handler{db: db}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}

// Home renders the public landing page.
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{})
}

// List shows the requester's notes. Notes of other users are never included.
func (h *Handler) List(c *gin.Context) {
	user := currentUser(c)

	notes, err := h.db.ListNotesByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	c.HTML(http.StatusOK, "list.html", gin.H{
		"User":  user,
		"Notes": notes,
	})
}

// AddPage renders an empty note form.
func (h *Handler) AddPage(c *gin.Context) {
	c.HTML(http.StatusOK, "form.html", gin.H{
		"User": currentUser(c),
		"Form": &forms.NoteForm{},
	})
}

// Add validates the submitted form and creates a note owned by the
// requester. Invalid submissions re-render the form without persisting.
func (h *Handler) Add(c *gin.Context) {
	user := currentUser(c)

	form := &forms.NoteForm{
		Title: c.PostForm("title"),
		Text:  c.PostForm("text"),
		Slug:  c.PostForm("slug"),
	}

	ok, err := form.Validate(c.Request.Context(), h.db, 0)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}
	if !ok {
		c.HTML(http.StatusOK, "form.html", gin.H{"User": user, "Form": form})
		return
	}

	note := &database.Note{
		Title:    form.Title,
		Text:     form.Text,
		Slug:     form.FinalSlug(),
		AuthorID: user.ID,
	}
	if err := h.db.CreateNote(c.Request.Context(), note); err != nil {
		// A concurrent create may win the slug between validation and
		// insert; the unique index reports it here.
		if errors.Is(err, database.ErrDuplicateSlug) {
			form.Errors["slug"] = note.Slug + forms.WARNING
			c.HTML(http.StatusOK, "form.html", gin.H{"User": user, "Form": form})
			return
		}
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	c.Redirect(http.StatusFound, SuccessPath)
}

// Detail shows a single note. Only the author can see it; anyone else gets
// 404 because the lookup is scoped to the requester's notes.
func (h *Handler) Detail(c *gin.Context) {
	user := currentUser(c)

	note, err := h.getOwnNote(c)
	if err != nil {
		return
	}

	c.HTML(http.StatusOK, "detail.html", gin.H{
		"User": user,
		"Note": note,
	})
}

// EditPage renders the note form pre-filled with the note's current fields.
func (h *Handler) EditPage(c *gin.Context) {
	user := currentUser(c)

	note, err := h.getOwnNote(c)
	if err != nil {
		return
	}

	form := &forms.NoteForm{
		Title: note.Title,
		Text:  note.Text,
		Slug:  note.Slug,
	}
	c.HTML(http.StatusOK, "form.html", gin.H{"User": user, "Form": form})
}

// Edit validates the submitted form and updates the note. The note's own
// slug is excluded from the uniqueness check.
func (h *Handler) Edit(c *gin.Context) {
	user := currentUser(c)

	note, err := h.getOwnNote(c)
	if err != nil {
		return
	}

	form := &forms.NoteForm{
		Title: c.PostForm("title"),
		Text:  c.PostForm("text"),
		Slug:  c.PostForm("slug"),
	}

	ok, err := form.Validate(c.Request.Context(), h.db, note.ID)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}
	if !ok {
		c.HTML(http.StatusOK, "form.html", gin.H{"User": user, "Form": form})
		return
	}

	note.Title = form.Title
	note.Text = form.Text
	note.Slug = form.FinalSlug()
	if err := h.db.UpdateNote(c.Request.Context(), note); err != nil {
		if errors.Is(err, database.ErrDuplicateSlug) {
			form.Errors["slug"] = note.Slug + forms.WARNING
			c.HTML(http.StatusOK, "form.html", gin.H{"User": user, "Form": form})
			return
		}
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	c.Redirect(http.StatusFound, SuccessPath)
}

// Delete removes the note and redirects to the success page.
func (h *Handler) Delete(c *gin.Context) {
	note, err := h.getOwnNote(c)
	if err != nil {
		return
	}

	if err := h.db.DeleteNote(c.Request.Context(), note); err != nil {
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	c.Redirect(http.StatusFound, SuccessPath)
}

// Success renders the confirmation page shown after add, edit and delete.
func (h *Handler) Success(c *gin.Context) {
	c.HTML(http.StatusOK, "success.html", gin.H{"User": currentUser(c)})
}

// getOwnNote resolves the slug path parameter to a note owned by the
// requester. It writes the error response itself, callers just return.
func (h *Handler) getOwnNote(c *gin.Context) (*database.Note, error) {
	user := currentUser(c)

	note, err := h.db.GetNoteBySlug(c.Request.Context(), user.ID, c.Param("slug"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.HTML(http.StatusNotFound, "notfound.html", gin.H{"User": user})
			c.Abort()
			return nil, err
		}
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return nil, err
	}
	return note, nil
}
