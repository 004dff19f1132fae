package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mealpress/mealpress/models"
	"github.com/mealpress/mealpress/utils"
)

// DateFormat is the display format posts carry in their Date column.
const DateFormat = "January 02, 2006"

// PostFields are the author-editable attributes of a post.
type PostFields struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

// ContentService implements post CRUD and comment creation.
type ContentService struct {
	db *gorm.DB
}

// NewContentService creates a ContentService bound to the given store handle.
func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// ListPosts returns all posts with their authors in store order.
func (s *ContentService) ListPosts() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := s.db.Preload("Author").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns the post and its comments, comment authors included.
func (s *ContentService) GetPost(id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	err := s.db.Preload("Author").Preload("Comments").Preload("Comments.Author").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// CreatePost persists a new post with the caller as its fixed author and
// today's date in display format. Title collisions surface from the
// store's unique index as ErrDuplicateTitle.
func (s *ContentService) CreatePost(authorID uint, fields PostFields) (*models.BlogPost, error) {
	post := models.BlogPost{
		Title:    fields.Title,
		Subtitle: fields.Subtitle,
		Body:     utils.Sanitize(fields.Body),
		ImgURL:   fields.ImgURL,
		Date:     time.Now().Format(DateFormat),
		AuthorID: authorID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost overwrites the editable fields; id, author, and date stay as
// they were.
func (s *ContentService) UpdatePost(id uint, fields PostFields) (*models.BlogPost, error) {
	post, err := s.GetPost(id)
	if err != nil {
		return nil, err
	}
	post.Title = fields.Title
	post.Subtitle = fields.Subtitle
	post.Body = utils.Sanitize(fields.Body)
	post.ImgURL = fields.ImgURL
	if err := s.db.Model(&models.BlogPost{ID: post.ID}).Select("title", "subtitle", "body", "img_url").Updates(map[string]interface{}{
		"title":    post.Title,
		"subtitle": post.Subtitle,
		"body":     post.Body,
		"img_url":  post.ImgURL,
	}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post and its comments in one transaction, so no
// orphaned comment rows survive.
func (s *ContentService) DeletePost(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var post models.BlogPost
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// AddComment links a new comment to its post and author. Authorship is
// mandatory; anonymous callers are stopped before this runs.
func (s *ContentService) AddComment(postID, authorID uint, text string) (*models.Comment, error) {
	var post models.BlogPost
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := models.Comment{
		Text:     utils.Sanitize(text),
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
