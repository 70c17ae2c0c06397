package middleware

import (
	"net/http"
	"net/url"

	"github.com/dfryer1193/onewheel-blog/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const adminContextKey = "admin"

// RequireAdmin aborts the request unless resolver finds an admin session.
// Page loads are sent to loginPath; any other method gets a 401.
func RequireAdmin(resolver domain.AdminResolver, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := resolver.ResolveAdmin(c.Request)
		if err == nil && admin != nil {
			c.Set(adminContextKey, admin)
			c.Next()
			return
		}

		log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected request without admin session")

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			target := loginPath + "?" + url.Values{"redirectTo": {c.Request.URL.RequestURI()}}.Encode()
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		c.AbortWithStatus(http.StatusUnauthorized)
	}
}

// AdminFromContext returns the admin stored by RequireAdmin.
func AdminFromContext(c *gin.Context) (*domain.Admin, bool) {
	v, ok := c.Get(adminContextKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*domain.Admin)
	return admin, ok
}
