package application

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dfryer1193/onewheel-blog/blog/domain"
	"github.com/go-playground/validator/v10"
)

// Intent names the mutation a form submission requests.
type Intent string

const (
	IntentCreate Intent = "create"
	IntentUpdate Intent = "update"
	IntentDelete Intent = "delete"
)

// ParseIntent accepts only the three known intents.
func ParseIntent(raw string) (Intent, error) {
	switch i := Intent(raw); i {
	case IntentCreate, IntentUpdate, IntentDelete:
		return i, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidIntent, raw)
}

// Submission is the raw admin form as posted by the browser.
type Submission struct {
	Intent   string
	Title    string
	Slug     string
	Markdown string
}

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// PostInput is a submission that passed validation.
// "new" and "admin" are taken by the admin routes, so no post can live under them.
type PostInput struct {
	Title    string `form:"title" validate:"required"`
	Slug     string `form:"slug" validate:"required,ne=new,ne=admin"`
	Markdown string `form:"markdown" validate:"required"`
}

func (in PostInput) toDomain() *domain.Post {
	return &domain.Post{
		Slug:     in.Slug,
		Title:    in.Title,
		Markdown: in.Markdown,
	}
}

const duplicateSlugMessage = "A post with this slug already exists!"

var fieldLabels = map[string]string{
	"title":    "Title",
	"slug":     "Slug",
	"markdown": "Markdown",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParsePostInput validates every field of the submission and reports all failures together.
func ParsePostInput(s Submission) (PostInput, FieldErrors) {
	input := PostInput{
		Title:    s.Title,
		Slug:     s.Slug,
		Markdown: s.Markdown,
	}

	err := validate.Struct(input)
	if err == nil {
		return input, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return PostInput{}, FieldErrors{"form": err.Error()}
	}

	fieldErrs := make(FieldErrors, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs[fe.Field()] = fieldMessage(fe)
	}
	return PostInput{}, fieldErrs
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required!"
	case "ne":
		return fmt.Sprintf("%s %q is reserved!", label, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
}
