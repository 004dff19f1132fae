package controllers

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mealpress/mealpress/middleware"
	"github.com/mealpress/mealpress/models"
	"github.com/mealpress/mealpress/services"
	"github.com/mealpress/mealpress/utils"
)

var testDBSeq atomic.Int64

func TestMain(m *testing.M) {
	utils.Logger = zap.NewNop()
	utils.Sugar = utils.Logger.Sugar()
	os.Exit(m.Run())
}

// page templates are stubbed out; these tests exercise routing, guards,
// and persistence, not markup.
var testTemplates = template.Must(template.New("t").Parse(`
{{ define "404.html" }}not found{{ end }}
{{ define "posts.html" }}posts{{ end }}
{{ define "post.html" }}post{{ end }}
{{ define "make-post.html" }}make-post{{ end }}
{{ define "register.html" }}register{{ end }}
{{ define "login.html" }}login{{ end }}
`))

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ctl_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.BlogPost{}, &models.Comment{}))
	return db
}

func setupTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("SESSION_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.SetHTMLTemplate(testTemplates)
	r.Use(middleware.SessionLoader())

	authController := NewAuthController(db)
	postController := NewPostController(db)

	r.GET("/register", authController.ShowRegister)
	r.POST("/register", authController.Register)
	r.GET("/login", authController.ShowLogin)
	r.POST("/login", authController.Login)
	r.GET("/logout", authController.Logout)

	r.GET("/posts", postController.ListPosts)
	r.GET("/post/:id", postController.ShowPost)
	r.POST("/post/:id", middleware.LoginRequired(), postController.AddComment)

	admin := r.Group("")
	admin.Use(middleware.AdminOnly())
	admin.GET("/new-post", postController.ShowNewPost)
	admin.POST("/new-post", postController.CreatePost)
	admin.GET("/edit-post/:id", postController.ShowEditPost)
	admin.POST("/edit-post/:id", postController.UpdatePost)
	admin.GET("/delete/:id", postController.DeletePost)

	return r
}

func sessionCookieFor(t *testing.T, userID uint, name string) *http.Cookie {
	t.Helper()
	token, err := utils.SignSession(userID, name)
	require.NoError(t, err)
	return &http.Cookie{Name: utils.SessionCookieName, Value: token}
}

func postForm(r *gin.Engine, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUsers(t *testing.T, db *gorm.DB) (admin, reader *models.User) {
	t.Helper()
	auth := services.NewAuthService(db)
	admin, err := auth.Register("Admin", "admin@example.com", "password123")
	require.NoError(t, err)
	reader, err = auth.Register("Reader", "reader@example.com", "password123")
	require.NoError(t, err)
	return admin, reader
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint) *models.BlogPost {
	t.Helper()
	post, err := services.NewContentService(db).CreatePost(authorID, services.PostFields{
		Title: "Seeded", Subtitle: "S", Body: "B", ImgURL: "http://x/y.png",
	})
	require.NoError(t, err)
	return post
}

func TestRegisterFlow(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db)

	w := postForm(r, "/register", url.Values{
		"name":     {"Ada"},
		"email":    {"ada@example.com"},
		"password": {"password123"},
	})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts", w.Header().Get("Location"))

	// a session cookie is established for the new user
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookieName && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected session cookie after registration")

	t.Run("duplicate email redirects to login", func(t *testing.T) {
		w := postForm(r, "/register", url.Values{
			"name":     {"Imposter"},
			"email":    {"ada@example.com"},
			"password": {"whatever"},
		})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("missing fields re-render the form", func(t *testing.T) {
		w := postForm(r, "/register", url.Values{"name": {"NoEmail"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginFlow(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db)
	seedUsers(t, db)

	t.Run("wrong password redirects back with flash", func(t *testing.T) {
		w := postForm(r, "/login", url.Values{"email": {"admin@example.com"}, "password": {"nope"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("unknown email redirects back with flash", func(t *testing.T) {
		w := postForm(r, "/login", url.Values{"email": {"ghost@example.com"}, "password": {"password123"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("correct credentials establish a session", func(t *testing.T) {
		w := postForm(r, "/login", url.Values{"email": {"admin@example.com"}, "password": {"password123"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/posts", w.Header().Get("Location"))
	})
}

func TestAdminOnlyGuard(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db)
	admin, reader := seedUsers(t, db)
	post := seedPost(t, db, admin.ID)

	adminCookie := sessionCookieFor(t, admin.ID, admin.Name)
	readerCookie := sessionCookieFor(t, reader.ID, reader.Name)

	createForm := url.Values{
		"title": {"Another"}, "subtitle": {"S"}, "body": {"B"}, "img_url": {"http://x/y.png"},
	}

	t.Run("anonymous callers get forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, postForm(r, "/new-post", createForm).Code)
		assert.Equal(t, http.StatusForbidden, postForm(r, fmt.Sprintf("/edit-post/%d", post.ID), createForm).Code)
		assert.Equal(t, http.StatusForbidden, get(r, fmt.Sprintf("/delete/%d", post.ID)).Code)
	})

	t.Run("authenticated non-admin gets forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, postForm(r, "/new-post", createForm, readerCookie).Code)
		assert.Equal(t, http.StatusForbidden, postForm(r, fmt.Sprintf("/edit-post/%d", post.ID), createForm, readerCookie).Code)
		assert.Equal(t, http.StatusForbidden, get(r, fmt.Sprintf("/delete/%d", post.ID), readerCookie).Code)

		var count int64
		db.Model(&models.BlogPost{}).Count(&count)
		assert.Equal(t, int64(1), count, "no post should have been created or deleted")
	})

	t.Run("admin can create, edit, delete", func(t *testing.T) {
		w := postForm(r, "/new-post", createForm, adminCookie)
		assert.Equal(t, http.StatusFound, w.Code)

		edit := url.Values{"title": {"Renamed"}, "subtitle": {"S"}, "body": {"B"}, "img_url": {"http://x/y.png"}}
		w = postForm(r, fmt.Sprintf("/edit-post/%d", post.ID), edit, adminCookie)
		assert.Equal(t, http.StatusFound, w.Code)

		w = get(r, fmt.Sprintf("/delete/%d", post.ID), adminCookie)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/posts", w.Header().Get("Location"))

		_, err := services.NewContentService(db).GetPost(post.ID)
		assert.ErrorIs(t, err, services.ErrPostNotFound)
	})

	t.Run("invalid img_url never reaches the store", func(t *testing.T) {
		bad := url.Values{"title": {"Bad"}, "subtitle": {"S"}, "body": {"B"}, "img_url": {"not a url"}}
		w := postForm(r, "/new-post", bad, adminCookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var count int64
		db.Model(&models.BlogPost{}).Where("title = ?", "Bad").Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestCommenting(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db)
	admin, reader := seedUsers(t, db)
	post := seedPost(t, db, admin.ID)

	t.Run("anonymous commenter is redirected to login, nothing persisted", func(t *testing.T) {
		w := postForm(r, fmt.Sprintf("/post/%d", post.ID), url.Values{"comment": {"drive-by"}})
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))

		var count int64
		db.Model(&models.Comment{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("logged-in commenter persists a comment", func(t *testing.T) {
		cookie := sessionCookieFor(t, reader.ID, reader.Name)
		w := postForm(r, fmt.Sprintf("/post/%d", post.ID), url.Values{"comment": {"lovely"}}, cookie)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, fmt.Sprintf("/post/%d", post.ID), w.Header().Get("Location"))

		var comment models.Comment
		require.NoError(t, db.First(&comment).Error)
		assert.Equal(t, reader.ID, comment.AuthorID)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, "lovely", comment.Text)
	})
}

func TestShowPostNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db)

	assert.Equal(t, http.StatusNotFound, get(r, "/post/999").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/post/junk").Code)
}

func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	r := setupTestRouter(t, db)
	admin, _ := seedUsers(t, db)

	t.Run("clears the session cookie", func(t *testing.T) {
		w := get(r, "/logout", sessionCookieFor(t, admin.ID, admin.Name))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/posts", w.Header().Get("Location"))
		for _, c := range w.Result().Cookies() {
			if c.Name == utils.SessionCookieName {
				assert.Empty(t, c.Value)
			}
		}
	})

	t.Run("succeeds for anonymous callers too", func(t *testing.T) {
		w := get(r, "/logout")
		assert.Equal(t, http.StatusFound, w.Code)
	})
}
