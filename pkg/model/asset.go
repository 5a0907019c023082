package model

import (
	"time"

	"github.com/lib/pq"
)

// Asset represents a managed asset row. CreatedBy and AssignedTo are the
// owner columns consulted by ownership scoping: CreatedBy is scalar,
// AssignedTo holds the ids of every user the asset is assigned to.
type Asset struct {
	ID         uint          `gorm:"column:id;primaryKey"`
	Tag        string        `gorm:"column:tag;uniqueIndex;not null"`
	Name       string        `gorm:"column:name;not null"`
	Status     string        `gorm:"column:status"`
	CreatedBy  uint          `gorm:"column:created_by;not null;index"`
	AssignedTo pq.Int64Array `gorm:"column:assigned_to;type:bigint[]"`
	CreatedAt  time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

func (Asset) TableName() string {
	return "assets"
}
