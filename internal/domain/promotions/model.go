package promotions

import "time"

type Promotion struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	Title           string    `gorm:"not null"`
	Description     string    `gorm:"not null"`
	Code            string    `gorm:"not null"`
	DiscountPercent float64   `gorm:"type:numeric(5,2);not null"`
	StartsAt        time.Time `gorm:"not null"`
	EndsAt          time.Time `gorm:"not null"`
	ImageURL        string    `gorm:"not null"`
	IsActive        bool      `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// Running reports whether the promotion applies at t.
func (p Promotion) Running(t time.Time) bool {
	return p.IsActive && !t.Before(p.StartsAt) && t.Before(p.EndsAt)
}

type Input struct {
	Title           string
	Description     string
	Code            string
	DiscountPercent float64
	StartsAt        time.Time
	EndsAt          time.Time
	ImageURL        string
	IsActive        bool
}

type ListFilter struct {
	RunningAt *time.Time
	Limit     int
	Offset    int
}
