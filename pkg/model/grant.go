package model

import "time"

// Grant represents one (role, resource, action) authorization fact.
// Conditions is an opaque blob carried for forward compatibility; the
// resolver does not interpret it.
type Grant struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	RoleID     uint      `gorm:"column:role_id;not null;index"`
	ResourceID uint      `gorm:"column:resource_id;not null"`
	ActionID   uint      `gorm:"column:action_id;not null"`
	Conditions []byte    `gorm:"column:conditions"`
	CreatedBy  uint      `gorm:"column:created_by"`
	UpdatedBy  uint      `gorm:"column:updated_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Grant) TableName() string {
	return "grants"
}
