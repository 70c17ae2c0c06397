package rest

import (
	"net/http"

	"github.com/dfryer1193/onewheel-blog/api"
	"github.com/dfryer1193/onewheel-blog/blog/application"
	"github.com/dfryer1193/onewheel-blog/blog/domain"
	"github.com/gin-gonic/gin"
)

type postForm struct {
	Title    string
	Slug     string
	Markdown string
}

func (a *Api) AdminIndex(c *gin.Context) {
	posts, err := a.admin.ListPosts(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	payload := make([]api.AdminPost, len(posts))
	for i, p := range posts {
		payload[i] = api.AdminPost{Slug: p.Slug, Title: p.Title, Markdown: p.Markdown}
	}

	respond(c, http.StatusOK, "admin_index.html", gin.H{
		"PageTitle": "Blog Admin",
		"Posts":     posts,
	}, payload)
}

func (a *Api) EditPost(c *gin.Context) {
	routeSlug := c.Param("slug")
	post, err := a.admin.LoadPost(c.Request.Context(), routeSlug)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var form postForm
	var payload any = gin.H{}
	if post != nil {
		form = postForm{Title: post.Title, Slug: post.Slug, Markdown: post.Markdown}
		payload = api.AdminPost{Slug: post.Slug, Title: post.Title, Markdown: post.Markdown}
	}

	renderForm(c, http.StatusOK, routeSlug, form, application.FieldErrors{}, payload)
}

func (a *Api) SubmitPost(c *gin.Context) {
	routeSlug := c.Param("slug")
	sub := application.Submission{
		Intent:   c.PostForm("intent"),
		Title:    c.PostForm("title"),
		Slug:     c.PostForm("slug"),
		Markdown: c.PostForm("markdown"),
	}

	fieldErrs, err := a.admin.Submit(c.Request.Context(), routeSlug, sub)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if len(fieldErrs) > 0 {
		form := postForm{Title: sub.Title, Slug: sub.Slug, Markdown: sub.Markdown}
		renderForm(c, http.StatusOK, routeSlug, form, fieldErrs, api.FormErrors{Errors: fieldErrs})
		return
	}

	c.Redirect(http.StatusSeeOther, adminPostsPath)
}

func renderForm(c *gin.Context, status int, routeSlug string, form postForm, errs application.FieldErrors, payload any) {
	isNew := routeSlug == domain.NewPostSlug
	title := "Edit post"
	if isNew {
		title = "New post"
	}

	respond(c, status, "admin_form.html", gin.H{
		"PageTitle": title,
		"RouteSlug": routeSlug,
		"IsNew":     isNew,
		"Form":      form,
		"Errors":    errs,
	}, payload)
}
