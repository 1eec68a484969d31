package admins

import "time"

type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleStaff:
		return true
	default:
		return false
	}
}

type AdminUser struct {
	ID          string    `gorm:"primaryKey"`
	Email       string    `gorm:"not null"`
	DisplayName string    `gorm:"not null"`
	Role        Role      `gorm:"type:text;not null"`
	Disabled    bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type CreateInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        Role
}

type UpdateInput struct {
	DisplayName string
	Role        Role
}

type ListFilter struct {
	Role   Role
	Search string
	Limit  int
	Offset int
}
