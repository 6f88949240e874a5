package model

import "time"

// Room is a joinable chat room. The chat transport itself lives outside this
// codebase; rooms are only listed and managed here.
type Room struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
}
