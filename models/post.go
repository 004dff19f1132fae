package models

// BlogPost is a published article. Date is stored as a formatted display
// string ("January 02, 2006"), matching what the templates print.
type BlogPost struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Title    string    `gorm:"size:250;uniqueIndex;not null" json:"title"`
	Subtitle string    `gorm:"size:250;not null" json:"subtitle"`
	Body     string    `gorm:"type:text;not null" json:"body"`
	ImgURL   string    `gorm:"size:250;not null" json:"img_url"`
	Date     string    `gorm:"size:250;not null" json:"date"`
	AuthorID uint      `gorm:"index;not null" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments"`
}

// TableName keeps the historical table name.
func (BlogPost) TableName() string { return "blog_posts" }
