package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mealpress/mealpress/forms"
	"github.com/mealpress/mealpress/middleware"
	"github.com/mealpress/mealpress/models"
	"github.com/mealpress/mealpress/services"
	"github.com/mealpress/mealpress/utils"
)

// PostController manages post pages, admin CRUD, and comments.
type PostController struct {
	content *services.ContentService
}

// NewPostController creates a PostController.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{content: services.NewContentService(db)}
}

// ListPosts renders all posts. Public.
func (p *PostController) ListPosts(ctx *gin.Context) {
	posts, err := p.content.ListPosts()
	if err != nil {
		utils.Sugar.Errorf("list posts failed: %v", err)
		ctx.HTML(http.StatusInternalServerError, "posts.html", pageData(ctx, gin.H{"Errors": []string{"could not load posts"}, "Posts": []models.BlogPost{}}))
		return
	}
	ctx.HTML(http.StatusOK, "posts.html", pageData(ctx, gin.H{"Posts": posts}))
}

// ShowPost renders one post with its comments, or the 404 page.
func (p *PostController) ShowPost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		renderNotFound(ctx)
		return
	}
	post, err := p.content.GetPost(id)
	if err != nil {
		if err == services.ErrPostNotFound {
			renderNotFound(ctx)
			return
		}
		utils.Sugar.Errorf("load post %d failed: %v", id, err)
		renderNotFound(ctx)
		return
	}
	ctx.HTML(http.StatusOK, "post.html", pageData(ctx, gin.H{"Post": post}))
}

// AddComment persists a comment from the logged-in user. The route is
// guarded by LoginRequired, which redirects anonymous callers to /login
// before anything is written.
func (p *PostController) AddComment(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		renderNotFound(ctx)
		return
	}

	var form forms.CommentForm
	_ = ctx.ShouldBind(&form)
	if msgs := forms.Validate(form); len(msgs) > 0 {
		utils.Flash(ctx, msgs[0])
		ctx.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	if _, err := p.content.AddComment(id, userID, form.Text); err != nil {
		if err == services.ErrPostNotFound {
			renderNotFound(ctx)
			return
		}
		utils.Sugar.Errorf("add comment failed: %v", err)
		utils.Flash(ctx, "could not save your comment, please try again")
	}
	ctx.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
}

// ShowNewPost renders the empty create-post form. Admin only.
func (p *PostController) ShowNewPost(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "make-post.html", pageData(ctx, gin.H{"IsEdit": false, "Form": forms.PostForm{}}))
}

// CreatePost validates and persists a new post. Admin only.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var form forms.PostForm
	_ = ctx.ShouldBind(&form)
	if msgs := forms.Validate(form); len(msgs) > 0 {
		ctx.HTML(http.StatusBadRequest, "make-post.html", pageData(ctx, gin.H{"IsEdit": false, "Errors": msgs, "Form": form}))
		return
	}

	userID, _ := middleware.CurrentUserID(ctx)
	_, err := p.content.CreatePost(userID, services.PostFields{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	})
	if err != nil {
		if err == services.ErrDuplicateTitle {
			ctx.HTML(http.StatusConflict, "make-post.html", pageData(ctx, gin.H{"IsEdit": false, "Errors": []string{err.Error()}, "Form": form}))
			return
		}
		utils.Sugar.Errorf("create post failed: %v", err)
		ctx.HTML(http.StatusInternalServerError, "make-post.html", pageData(ctx, gin.H{"IsEdit": false, "Errors": []string{"could not save the post"}, "Form": form}))
		return
	}
	ctx.Redirect(http.StatusFound, "/posts")
}

// ShowEditPost renders the edit form prefilled with the current fields.
// Admin only.
func (p *PostController) ShowEditPost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		renderNotFound(ctx)
		return
	}
	post, err := p.content.GetPost(id)
	if err != nil {
		renderNotFound(ctx)
		return
	}
	form := forms.PostForm{Title: post.Title, Subtitle: post.Subtitle, ImgURL: post.ImgURL, Body: post.Body}
	ctx.HTML(http.StatusOK, "make-post.html", pageData(ctx, gin.H{"IsEdit": true, "PostID": post.ID, "Form": form}))
}

// UpdatePost overwrites the editable fields of an existing post. Admin only.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		renderNotFound(ctx)
		return
	}

	var form forms.PostForm
	_ = ctx.ShouldBind(&form)
	if msgs := forms.Validate(form); len(msgs) > 0 {
		ctx.HTML(http.StatusBadRequest, "make-post.html", pageData(ctx, gin.H{"IsEdit": true, "PostID": id, "Errors": msgs, "Form": form}))
		return
	}

	_, err := p.content.UpdatePost(id, services.PostFields{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	})
	switch err {
	case nil:
		ctx.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
	case services.ErrPostNotFound:
		renderNotFound(ctx)
	case services.ErrDuplicateTitle:
		ctx.HTML(http.StatusConflict, "make-post.html", pageData(ctx, gin.H{"IsEdit": true, "PostID": id, "Errors": []string{err.Error()}, "Form": form}))
	default:
		utils.Sugar.Errorf("update post %d failed: %v", id, err)
		ctx.HTML(http.StatusInternalServerError, "make-post.html", pageData(ctx, gin.H{"IsEdit": true, "PostID": id, "Errors": []string{"could not save the post"}, "Form": form}))
	}
}

// DeletePost removes a post and its comments. Admin only.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		renderNotFound(ctx)
		return
	}
	if err := p.content.DeletePost(id); err != nil {
		if err == services.ErrPostNotFound {
			renderNotFound(ctx)
			return
		}
		utils.Sugar.Errorf("delete post %d failed: %v", id, err)
		utils.Flash(ctx, "could not delete the post")
	}
	ctx.Redirect(http.StatusFound, "/posts")
}

func parsePostID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func renderNotFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "404.html", pageData(ctx, nil))
}
