package model

// Idea is a submitted idea card. Author is the submitter's display name at
// submission time, not an identity key; two users with the same display name
// are indistinguishable here.
type Idea struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	Content   string `json:"content" gorm:"type:text;not null"`
	Author    string `json:"author" gorm:"size:255;not null"`
	Timestamp int64  `json:"timestamp" gorm:"not null;index"` // unix millis
}
