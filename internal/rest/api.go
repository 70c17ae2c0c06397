package rest

import (
	"net/http"

	"github.com/dfryer1193/onewheel-blog/blog/application"
	"github.com/dfryer1193/onewheel-blog/blog/domain"
	"github.com/dfryer1193/onewheel-blog/internal/middleware"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	postsPath      = "/posts"
	adminPostsPath = "/posts/admin"
	loginPath      = "/login"
)

// Sessions resolves admin identity and manages the login cookie.
type Sessions interface {
	domain.AdminResolver
	VerifyCredentials(email, password string) (*domain.Admin, error)
	SetSession(w http.ResponseWriter, admin *domain.Admin) error
	ClearSession(w http.ResponseWriter)
}

type Api struct {
	posts    *application.PostService
	admin    *application.AdminService
	sessions Sessions
}

// NewApi registers every blog route on router.
func NewApi(router *gin.Engine, posts *application.PostService, admin *application.AdminService, sessions Sessions, loginLimiter *rate.Limiter) *Api {
	a := &Api{
		posts:    posts,
		admin:    admin,
		sessions: sessions,
	}

	router.GET("/healthz", a.Health)
	router.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, postsPath) })

	router.GET(loginPath, a.LoginForm)
	router.POST(loginPath, middleware.RateLimit(loginLimiter), a.Login)
	router.POST("/logout", a.Logout)

	public := router.Group(postsPath)
	{
		public.GET("", a.ListPosts)
		public.GET("/:slug", a.ShowPost)
	}

	adminRoutes := router.Group(adminPostsPath, middleware.RequireAdmin(sessions, loginPath))
	{
		adminRoutes.GET("", a.AdminIndex)
		adminRoutes.GET("/:slug", a.EditPost)
		adminRoutes.POST("/:slug", a.SubmitPost)
	}

	return a
}

func (a *Api) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
