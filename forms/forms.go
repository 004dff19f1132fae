package forms

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterForm is the sign-up form.
type RegisterForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// PostForm backs both the new-post and edit-post pages. The image must
// be a well-formed URL; malformed values never reach the store.
type PostForm struct {
	Title    string `form:"title" validate:"required"`
	Subtitle string `form:"subtitle" validate:"required"`
	ImgURL   string `form:"img_url" validate:"required,url"`
	Body     string `form:"body" validate:"required"`
}

// CommentForm carries a single rich-text comment.
type CommentForm struct {
	Text string `form:"comment" validate:"required"`
}

// Validate checks a form struct and returns user-facing field messages,
// empty when the form is valid.
func Validate(form interface{}) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"invalid form submission"}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return msgs
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
