package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/notemark/notemark/internal/api/models"
)

// RequireAuth returns middleware that redirects anonymous requests to the
// login page, carrying the original URL in the next parameter.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		id, ok := userID.(uint)
		if !ok {
			// Stale session from an older build, force a fresh login.
			session.Clear()
			_ = session.Save()
			c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		// create user model from session data
		user := &models.User{
			ID:       id,
			Username: getSessionString(session, "user_username"),
		}

		c.Set("user_id", id)
		c.Set("user", user)
		c.Next()
	}
}

func getSessionString(session sessions.Session, key string) string {
	if v, ok := session.Get(key).(string); ok {
		return v
	}
	return ""
}
