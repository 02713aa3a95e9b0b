package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/notemark/notemark/internal/api/auth"
	"github.com/notemark/notemark/internal/api/handler"
	"github.com/notemark/notemark/internal/forms"
)

func noteFormData() url.Values {
	return url.Values{
		"title": {"Заголовок"},
		"text":  {"Текст"},
		"slug":  {"new-slug"},
	}
}

func (s *APITestSuite) TestUserCanCreateNote() {
	author := s.createUser("author")
	s.createNote(author, "Старый заголовок", "Старый текст", "old-slug")
	cookies := s.login("author")

	w := s.do(http.MethodPost, "/notes/add", noteFormData(), cookies)
	s.Equal(http.StatusFound, w.Code)
	s.Equal(handler.SuccessPath, w.Header().Get("Location"))
	s.EqualValues(2, s.countNotes())

	note, err := s.db.GetNoteBySlug(context.Background(), author.ID, "new-slug")
	s.Require().NoError(err)
	s.Equal("Заголовок", note.Title)
	s.Equal("Текст", note.Text)
	s.Equal(author.ID, note.AuthorID)
}

func (s *APITestSuite) TestAnonymousUserCantCreateNote() {
	author := s.createUser("author")
	s.createNote(author, "Старый заголовок", "Старый текст", "old-slug")

	w := s.do(http.MethodPost, "/notes/add", noteFormData(), nil)
	s.Equal(http.StatusFound, w.Code)
	s.Equal(auth.LoginRedirectURL("/notes/add"), w.Header().Get("Location"))
	s.EqualValues(1, s.countNotes())
}

func (s *APITestSuite) TestNotUniqueSlug() {
	author := s.createUser("author")
	note := s.createNote(author, "Старый заголовок", "Старый текст", "old-slug")
	cookies := s.login("author")

	form := noteFormData()
	form.Set("slug", note.Slug)
	w := s.do(http.MethodPost, "/notes/add", form, cookies)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), note.Slug+forms.WARNING)
	s.EqualValues(1, s.countNotes())
}

func (s *APITestSuite) TestAuthorCanEditNote() {
	author := s.createUser("author")
	note := s.createNote(author, "Старый заголовок", "Старый текст", "old-slug")
	cookies := s.login("author")

	w := s.do(http.MethodPost, "/notes/old-slug/edit", noteFormData(), cookies)
	s.Equal(http.StatusFound, w.Code)
	s.Equal(handler.SuccessPath, w.Header().Get("Location"))

	got, err := s.db.GetNoteBySlug(context.Background(), author.ID, "new-slug")
	s.Require().NoError(err)
	s.Equal(note.ID, got.ID)
	s.Equal("Заголовок", got.Title)
	s.Equal("Текст", got.Text)
	s.Equal("new-slug", got.Slug)
}

func (s *APITestSuite) TestOtherUserCantEditNote() {
	author := s.createUser("author")
	s.createUser("not_author")
	s.createNote(author, "Старый заголовок", "Старый текст", "old-slug")
	cookies := s.login("not_author")

	w := s.do(http.MethodPost, "/notes/old-slug/edit", noteFormData(), cookies)
	s.Equal(http.StatusNotFound, w.Code)

	got, err := s.db.GetNoteBySlug(context.Background(), author.ID, "old-slug")
	s.Require().NoError(err)
	s.Equal("Старый заголовок", got.Title)
	s.Equal("Старый текст", got.Text)
}

func (s *APITestSuite) TestEditKeepingOwnSlug() {
	author := s.createUser("author")
	s.createNote(author, "Старый заголовок", "Старый текст", "old-slug")
	cookies := s.login("author")

	// Re-submitting the unchanged slug must not trip the uniqueness check.
	form := noteFormData()
	form.Set("slug", "old-slug")
	w := s.do(http.MethodPost, "/notes/old-slug/edit", form, cookies)
	s.Equal(http.StatusFound, w.Code)

	got, err := s.db.GetNoteBySlug(context.Background(), author.ID, "old-slug")
	s.Require().NoError(err)
	s.Equal("Заголовок", got.Title)
}

func (s *APITestSuite) TestEditToTakenSlug() {
	author := s.createUser("author")
	s.createNote(author, "Первая", "Текст", "taken")
	s.createNote(author, "Вторая", "Текст", "old-slug")
	cookies := s.login("author")

	form := noteFormData()
	form.Set("slug", "taken")
	w := s.do(http.MethodPost, "/notes/old-slug/edit", form, cookies)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "taken"+forms.WARNING)

	got, err := s.db.GetNoteBySlug(context.Background(), author.ID, "old-slug")
	s.Require().NoError(err)
	s.Equal("Вторая", got.Title)
}

func (s *APITestSuite) TestAuthorCanDeleteNote() {
	author := s.createUser("author")
	s.createNote(author, "Старый заголовок", "Старый текст", "old-slug")
	cookies := s.login("author")

	w := s.do(http.MethodPost, "/notes/old-slug/delete", nil, cookies)
	s.Equal(http.StatusFound, w.Code)
	s.Equal(handler.SuccessPath, w.Header().Get("Location"))
	s.EqualValues(0, s.countNotes())
}

func (s *APITestSuite) TestOtherUserCantDeleteNote() {
	author := s.createUser("author")
	s.createUser("not_author")
	s.createNote(author, "Старый заголовок", "Старый текст", "old-slug")
	cookies := s.login("not_author")

	w := s.do(http.MethodPost, "/notes/old-slug/delete", nil, cookies)
	s.Equal(http.StatusNotFound, w.Code)
	s.EqualValues(1, s.countNotes())
}

func (s *APITestSuite) TestEmptySlug() {
	author := s.createUser("author2")
	cookies := s.login("author2")

	form := noteFormData()
	form.Set("title", "Заголовок")
	form.Del("slug")
	w := s.do(http.MethodPost, "/notes/add", form, cookies)
	s.Equal(http.StatusFound, w.Code)
	s.Equal(handler.SuccessPath, w.Header().Get("Location"))
	s.EqualValues(1, s.countNotes())

	note, err := s.db.GetNoteBySlug(context.Background(), author.ID, forms.Slugify("Заголовок"))
	s.Require().NoError(err)
	s.Equal("zagolovok", note.Slug)
}

func (s *APITestSuite) TestInvalidNoteFormDoesNotPersist() {
	s.createUser("author")
	cookies := s.login("author")

	form := url.Values{"title": {""}, "text": {""}}
	w := s.do(http.MethodPost, "/notes/add", form, cookies)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Обязательное поле.")
	s.EqualValues(0, s.countNotes())
}
