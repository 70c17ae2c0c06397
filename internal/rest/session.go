package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// safeRedirect only follows local paths so the login form cannot bounce users to another site.
func safeRedirect(to string) string {
	if !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.HasPrefix(to, "/\\") {
		return adminPostsPath
	}
	return to
}

func (a *Api) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"PageTitle":  "Log in",
		"RedirectTo": safeRedirect(c.Query("redirectTo")),
	})
}

func (a *Api) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	redirectTo := safeRedirect(c.PostForm("redirectTo"))

	admin, err := a.sessions.VerifyCredentials(email, c.PostForm("password"))
	if err != nil {
		log.Warn().Str("email", email).Msg("Rejected admin login")
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"PageTitle":  "Log in",
			"RedirectTo": redirectTo,
			"Email":      email,
			"Error":      "Invalid email or password",
		})
		return
	}

	if err := a.sessions.SetSession(c.Writer, admin); err != nil {
		abortWithError(c, err)
		return
	}

	log.Info().Str("email", admin.Email).Msg("Admin logged in")
	c.Redirect(http.StatusSeeOther, redirectTo)
}

func (a *Api) Logout(c *gin.Context) {
	a.sessions.ClearSession(c.Writer)
	c.Redirect(http.StatusSeeOther, "/")
}
