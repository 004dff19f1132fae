package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mealpress/mealpress/forms"
	"github.com/mealpress/mealpress/services"
	"github.com/mealpress/mealpress/utils"
)

// AuthController handles registration, login, and logout.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{auth: services.NewAuthService(db)}
}

// ShowRegister renders the registration form.
func (a *AuthController) ShowRegister(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "register.html", pageData(ctx, gin.H{"Form": forms.RegisterForm{}}))
}

// Register creates an account and logs the new user straight in.
func (a *AuthController) Register(ctx *gin.Context) {
	var form forms.RegisterForm
	_ = ctx.ShouldBind(&form)
	if msgs := forms.Validate(form); len(msgs) > 0 {
		ctx.HTML(http.StatusBadRequest, "register.html", pageData(ctx, gin.H{"Errors": msgs, "Form": form}))
		return
	}

	user, err := a.auth.Register(form.Name, form.Email, form.Password)
	if err != nil {
		if err == services.ErrDuplicateEmail {
			utils.Flash(ctx, "You've already signed up. Login instead!")
			ctx.Redirect(http.StatusFound, "/login")
			return
		}
		utils.Sugar.Errorf("register failed: %v", err)
		ctx.HTML(http.StatusInternalServerError, "register.html", pageData(ctx, gin.H{"Errors": []string{"something went wrong, please try again"}, "Form": form}))
		return
	}

	if err := utils.IssueSession(ctx, user.ID, user.Name); err != nil {
		utils.Sugar.Errorf("session issue failed: %v", err)
	}
	ctx.Redirect(http.StatusFound, "/posts")
}

// ShowLogin renders the login form.
func (a *AuthController) ShowLogin(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", pageData(ctx, gin.H{"Form": forms.LoginForm{}}))
}

// Login verifies credentials and establishes a session.
func (a *AuthController) Login(ctx *gin.Context) {
	var form forms.LoginForm
	_ = ctx.ShouldBind(&form)
	if msgs := forms.Validate(form); len(msgs) > 0 {
		ctx.HTML(http.StatusBadRequest, "login.html", pageData(ctx, gin.H{"Errors": msgs, "Form": form}))
		return
	}

	user, err := a.auth.Login(form.Email, form.Password)
	switch err {
	case nil:
	case services.ErrUnknownEmail:
		utils.Flash(ctx, "That email doesn't exist. Please try again.")
		ctx.Redirect(http.StatusFound, "/login")
		return
	case services.ErrBadPassword:
		utils.Flash(ctx, "Password incorrect. Please try again.")
		ctx.Redirect(http.StatusFound, "/login")
		return
	default:
		utils.Sugar.Errorf("login failed: %v", err)
		ctx.HTML(http.StatusInternalServerError, "login.html", pageData(ctx, gin.H{"Errors": []string{"something went wrong, please try again"}, "Form": form}))
		return
	}

	if err := utils.IssueSession(ctx, user.ID, user.Name); err != nil {
		utils.Sugar.Errorf("session issue failed: %v", err)
	}
	ctx.Redirect(http.StatusFound, "/posts")
}

// Logout clears the session unconditionally and redirects.
func (a *AuthController) Logout(ctx *gin.Context) {
	utils.ClearSession(ctx)
	ctx.Redirect(http.StatusFound, "/posts")
}
