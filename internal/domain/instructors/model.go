package instructors

import (
	"time"

	"github.com/lib/pq"
)

type Instructor struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"not null"`
	Email     string         `gorm:"not null"`
	Bio       string         `gorm:"not null"`
	PhotoURL  string         `gorm:"not null"`
	Styles    pq.StringArray `gorm:"type:text[];not null"`
	IsActive  bool           `gorm:"not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

type InstructorWithClasses struct {
	Instructor
	ClassIDs []string
}

type Input struct {
	Name     string
	Email    string
	Bio      string
	PhotoURL string
	Styles   []string
	IsActive bool
}

type ListFilter struct {
	ActiveOnly bool
	Style      string
	Search     string
	Limit      int
	Offset     int
}
