// Package auth implements session based authentication: signup, login,
// logout and the middleware protecting the note pages.
package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/notemark/notemark/internal/database"
)

const (
	// LoginPath is the path anonymous users are redirected to.
	LoginPath = "/auth/login"
	// MinPasswordLen is the minimum accepted password length on signup.
	MinPasswordLen = 8

	defaultNext = "/notes/"
)

// Handler serves the authentication endpoints.
type Handler struct {
	db database.DB
}

func New(db database.DB) *Handler {
	return &Handler{db: db}
}

// LoginRedirectURL builds the login URL carrying the originally requested
// path in the next query parameter.
func LoginRedirectURL(next string) string {
	return LoginPath + "?next=" + url.QueryEscape(next)
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Next": c.Query("next"),
	})
}

// Login verifies the submitted credentials and establishes a session.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := c.PostForm("next")

	if username == "" || password == "" {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "Введите имя пользователя и пароль.",
			"Username": username,
			"Next":     next,
		})
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), username)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "Неверное имя пользователя или пароль.",
			"Username": username,
			"Next":     next,
		})
		return
	}

	// Save user info in session
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("user_username", user.Username)
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	c.Redirect(http.StatusFound, sanitizeNext(next))
}

// Logout clears the session and returns to the public home page.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("failed to clear session", "error", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// SignupPage renders the signup form.
func (h *Handler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

// Signup creates a new account and redirects to the login page.
func (h *Handler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"Error":    "Введите имя пользователя и пароль.",
			"Username": username,
		})
		return
	}
	if len(password) < MinPasswordLen {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"Error":    "Пароль должен содержать не менее 8 символов.",
			"Username": username,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	if _, err := h.db.CreateUser(c.Request.Context(), username, string(hash)); err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			c.HTML(http.StatusOK, "signup.html", gin.H{
				"Error":    "Пользователь с таким именем уже существует.",
				"Username": username,
			})
			return
		}
		c.AbortWithError(http.StatusInternalServerError, err) //nolint:errcheck
		return
	}

	log.Info("user signed up", "username", username)
	c.Redirect(http.StatusFound, LoginPath)
}

// sanitizeNext keeps redirects on this host. Anything that isn't a local
// path falls back to the notes list.
func sanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return defaultNext
	}
	return next
}
