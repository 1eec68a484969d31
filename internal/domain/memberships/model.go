package memberships

import "time"

type Membership struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Description  string    `gorm:"not null"`
	Price        float64   `gorm:"type:numeric(10,2);not null"`
	DurationDays int       `gorm:"not null"`
	ClassLimit   int       `gorm:"not null"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Input carries the editable fields for create and update. ClassLimit 0
// means unlimited.
type Input struct {
	Name         string
	Description  string
	Price        float64
	DurationDays int
	ClassLimit   int
	IsActive     bool
}

type ListFilter struct {
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}
