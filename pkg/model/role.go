package model

import "time"

// Role represents a named permission profile
type Role struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedBy uint      `gorm:"column:created_by"`
	UpdatedBy uint      `gorm:"column:updated_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}
