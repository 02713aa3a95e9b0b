package api

import (
	"net/http"
	"net/url"

	"github.com/notemark/notemark/internal/api/auth"
)

func (s *APITestSuite) TestPublicPages() {
	for _, path := range []string{"/", "/auth/login", "/auth/signup"} {
		w := s.do(http.MethodGet, path, nil, nil)
		s.Equal(http.StatusOK, w.Code, "path %s", path)
	}
}

func (s *APITestSuite) TestLogoutRedirects() {
	s.createUser("testUser")
	cookies := s.login("testUser")

	w := s.do(http.MethodPost, "/auth/logout", nil, cookies)
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/auth/logout", nil, nil)
	s.Equal(http.StatusFound, w.Code)
}

func (s *APITestSuite) TestPagesAvailabilityForAuthenticated() {
	s.createUser("testUser")
	cookies := s.login("testUser")

	for _, path := range []string{"/notes/", "/notes/add", "/notes/success"} {
		w := s.do(http.MethodGet, path, nil, cookies)
		s.Equal(http.StatusOK, w.Code, "path %s", path)
	}
}

func (s *APITestSuite) TestRedirectForAnonymousClient() {
	author := s.createUser("author")
	s.createNote(author, "Заголовок", "Текст", "slug")

	pages := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/notes/"},
		{http.MethodGet, "/notes/add"},
		{http.MethodGet, "/notes/success"},
		{http.MethodGet, "/notes/slug"},
		{http.MethodGet, "/notes/slug/edit"},
		{http.MethodPost, "/notes/slug/edit"},
		{http.MethodPost, "/notes/slug/delete"},
	}
	for _, p := range pages {
		w := s.do(p.method, p.path, nil, nil)
		s.Equal(http.StatusFound, w.Code, "%s %s", p.method, p.path)
		s.Equal(auth.LoginRedirectURL(p.path), w.Header().Get("Location"), "%s %s", p.method, p.path)
	}
}

func (s *APITestSuite) TestAvailabilityForNoteDetailAndEdit() {
	author := s.createUser("author")
	s.createUser("reader")
	s.createNote(author, "Заголовок", "Текст", "slug")

	users := []struct {
		username string
		status   int
	}{
		{"author", http.StatusOK},
		{"reader", http.StatusNotFound},
	}
	for _, u := range users {
		cookies := s.login(u.username)
		for _, path := range []string{"/notes/slug", "/notes/slug/edit"} {
			w := s.do(http.MethodGet, path, nil, cookies)
			s.Equal(u.status, w.Code, "user %s path %s", u.username, path)
		}
	}
}

func (s *APITestSuite) TestLoginRedirectsToNext() {
	s.createUser("testUser")

	w := s.do(http.MethodPost, "/auth/login", url.Values{
		"username": {"testUser"},
		"password": {testPassword},
		"next":     {"/notes/add"},
	}, nil)
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/notes/add", w.Header().Get("Location"))
}

func (s *APITestSuite) TestLoginRejectsBadPassword() {
	s.createUser("testUser")

	w := s.do(http.MethodPost, "/auth/login", url.Values{
		"username": {"testUser"},
		"password": {"wrong-password"},
	}, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Неверное имя пользователя или пароль.")
}

func (s *APITestSuite) TestSignupCreatesUser() {
	w := s.do(http.MethodPost, "/auth/signup", url.Values{
		"username": {"newcomer"},
		"password": {testPassword},
	}, nil)
	s.Equal(http.StatusFound, w.Code)
	s.Equal(auth.LoginPath, w.Header().Get("Location"))

	w = s.do(http.MethodPost, "/auth/signup", url.Values{
		"username": {"newcomer"},
		"password": {testPassword},
	}, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "уже существует")
}
