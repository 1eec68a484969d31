package classes

import (
	"time"

	"gorm.io/datatypes"
)

type Class struct {
	ID             string                             `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string                             `gorm:"not null" json:"name"`
	Description    string                             `gorm:"not null" json:"description"`
	InstructorID   *string                            `gorm:"type:uuid" json:"instructor_id"`
	InstructorName string                             `gorm:"not null" json:"instructor_name"`
	ImageURL       string                             `gorm:"not null" json:"image_url"`
	VideoURL       string                             `gorm:"not null" json:"video_url"`
	Schedule       datatypes.JSONSlice[ScheduleEntry] `gorm:"type:jsonb;not null" json:"schedule"`
	Price          float64                            `gorm:"type:numeric(10,2);not null" json:"price"`
	PromotionID    *string                            `gorm:"type:uuid" json:"promotion_id"`
	IsCompleted    bool                               `gorm:"not null" json:"is_completed"`
	IsActive       bool                               `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time                          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                          `gorm:"autoUpdateTime" json:"updated_at"`
}

type ScheduleEntry struct {
	Weekday         int    `json:"weekday"`
	Start           string `json:"start"`
	DurationMinutes int    `json:"duration_minutes"`
	Room            string `json:"room,omitempty"`
}

type ClassWithMemberships struct {
	Class
	MembershipIDs []string
}

// MediaURLs lists the blobs a class references.
func (c Class) MediaURLs() []string {
	urls := make([]string, 0, 2)
	for _, url := range []string{c.ImageURL, c.VideoURL} {
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

type Status string

const (
	StatusAll      Status = ""
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type ListFilter struct {
	Status Status
	Search string
	Limit  int
	Offset int
}
