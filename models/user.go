package models

import "time"

// User is a registered account. Passwords are stored as bcrypt hashes only.
// The first row ever inserted (ID 1) is the site admin.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Name         string     `gorm:"size:1000;not null" json:"name"`
	CreatedAt    time.Time  `json:"created_at"`
	Posts        []BlogPost `gorm:"foreignKey:AuthorID" json:"-"`
	Comments     []Comment  `gorm:"foreignKey:AuthorID" json:"-"`
}
