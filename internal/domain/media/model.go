package media

import "time"

// Cleanup is a blob whose deletion failed after the owning record was
// already gone. The cleanup job retries it.
type Cleanup struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	URL       string    `gorm:"not null"`
	Attempts  int       `gorm:"not null"`
	LastError string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Cleanup) TableName() string {
	return "media_cleanup"
}

type UploadInput struct {
	Folder      string
	Filename    string
	ContentType string
	Data        []byte
}

type Uploaded struct {
	URL         string
	Key         string
	ContentType string
	Size        int
}

type RetryResult struct {
	Deleted int
	Failed  int
	Dropped int
}
