package packs

import "time"

type ClassPack struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null"`
	Description     string    `gorm:"not null"`
	Price           float64   `gorm:"type:numeric(10,2);not null"`
	DiscountEnabled bool      `gorm:"not null"`
	DiscountPercent float64   `gorm:"type:numeric(5,2);not null"`
	IsActive        bool      `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (ClassPack) TableName() string {
	return "class_packs"
}

type PackWithClasses struct {
	ClassPack
	ClassIDs []string
}

type CreateInput struct {
	Name            string
	Description     string
	DiscountEnabled bool
	DiscountPercent float64
	IsActive        bool
	ClassIDs        []string
}

type UpdateInput struct {
	ID              string
	Name            string
	Description     string
	DiscountEnabled bool
	DiscountPercent float64
	IsActive        bool
	ClassIDs        []string
}

type ListFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}
