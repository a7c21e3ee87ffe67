// Package models contains the domain records and error types for Quill.
package models

import (
	"time"
)

// Post is a user-authored feed entry with a title, body text and one image
// asset reference. CreatorID is set once at creation and never changes;
// ownership of the post is derived from it.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `gorm:"not null" json:"imageUrl"`
	CreatorID uint      `gorm:"not null;index" json:"creator"`
	Creator   *User     `gorm:"foreignKey:CreatorID" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostRef is the denormalized back-reference of a post on its owner. The
// Post row is the source of truth; this table is a lookup index kept in
// lock-step by the service layer (see PostService).
type PostRef struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
