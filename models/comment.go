package models

// Comment is a reply left on a post. Comments are never edited or
// deleted on their own; they only go away when their post is deleted.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"index;not null" json:"author_id"`
	PostID   uint   `gorm:"index;not null" json:"post_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
}
