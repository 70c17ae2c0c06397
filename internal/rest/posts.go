package rest

import (
	"net/http"

	"github.com/dfryer1193/onewheel-blog/api"
	"github.com/gin-gonic/gin"
)

func (a *Api) ListPosts(c *gin.Context) {
	summaries, err := a.posts.ListSummaries(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	payload := make([]api.PostSummary, len(summaries))
	for i, s := range summaries {
		payload[i] = api.PostSummary{Slug: s.Slug, Title: s.Title}
	}

	respond(c, http.StatusOK, "index.html", gin.H{
		"PageTitle": "Posts",
		"Posts":     summaries,
	}, payload)
}

func (a *Api) ShowPost(c *gin.Context) {
	rendered, err := a.posts.RenderPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "post.html", gin.H{
		"PageTitle": rendered.Title,
		"Post":      rendered,
	}, api.Post{Title: rendered.Title, HTML: rendered.HTML.String()})
}
