package news

import "time"

type Post struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	Title       string     `gorm:"not null"`
	Body        string     `gorm:"not null"`
	ImageURL    string     `gorm:"not null"`
	IsPublished bool       `gorm:"not null"`
	PublishedAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Post) TableName() string {
	return "news_posts"
}

type Input struct {
	Title    string
	Body     string
	ImageURL string
}

type ListFilter struct {
	PublishedOnly bool
	Limit         int
	Offset        int
}
