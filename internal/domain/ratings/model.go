package ratings

import "time"

type Rating struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	ClassID   string    `gorm:"type:uuid;index;not null"`
	UserID    string    `gorm:"not null"`
	UserName  string    `gorm:"not null"`
	Score     int       `gorm:"not null"`
	Comment   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type ListFilter struct {
	ClassID  string
	MaxScore int
	Limit    int
	Offset   int
}

// ScoreTotals is the raw aggregate per class as read from the store.
type ScoreTotals struct {
	ClassID   string
	ClassName string
	Count     int64
	Sum       int64
}

type Summary struct {
	ClassID   string
	ClassName string
	Count     int64
	Average   float64
}
