package models

import (
	"time"
)

// User is an account that can authenticate and own posts. Status is free
// text owned solely by the user. The password hash is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Status    string    `gorm:"default:'I am new!'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatorSummary is the minimal view of a post's owner returned from
// CreatePost. Field names match what existing clients expect.
type CreatorSummary struct {
	ID   uint   `json:"_id"`
	Name string `json:"name"`
}
