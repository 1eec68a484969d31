package checkins

import "time"

type CheckIn struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	ClassID     *string   `gorm:"type:uuid;index"`
	ClassName   string    `gorm:"not null"`
	UserID      string    `gorm:"not null"`
	UserName    string    `gorm:"not null"`
	CheckedInAt time.Time `gorm:"not null"`
}

type ListFilter struct {
	ClassID string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

type CreateInput struct {
	ClassID     string
	UserID      string
	UserName    string
	CheckedInAt *time.Time
}
