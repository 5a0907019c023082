package gorm

import (
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ledgepoint/assetd/pkg/filter"
	"github.com/ledgepoint/assetd/pkg/model"
	"github.com/ledgepoint/assetd/pkg/server/store"
)

// Ensure AssetsStore implements store.AssetsStore
var _ store.AssetsStore = (*AssetsStore)(nil)

// AssetsStore implements store.AssetsStore using GORM
type AssetsStore struct {
	db *gorm.DB
}

// NewAssetsStore creates a new AssetsStore
func NewAssetsStore(db *gorm.DB) *AssetsStore {
	return &AssetsStore{db: db}
}

type assetRow struct {
	Id         uint
	Tag        string
	Name       string
	Status     string
	CreatedBy  uint
	AssignedTo pq.Int64Array `gorm:"type:bigint[]"`
}

// ListAssets returns assets matching the scope predicate
func (s *AssetsStore) ListAssets(scope filter.Predicate) ([]store.Asset, error) {
	query := `SELECT id, tag, name, status, created_by, assigned_to FROM assets`
	args := []interface{}{}
	if scope != nil {
		if where, whereArgs := scope.SQL(); where != "" {
			query += ` WHERE ` + where
			args = whereArgs
		}
	}
	query += ` ORDER BY id`

	var rows []assetRow
	if err := s.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	assets := make([]store.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, rowToAsset(row))
	}
	return assets, nil
}

// FetchAsset retrieves one asset within the scope predicate, or nil
func (s *AssetsStore) FetchAsset(assetID uint, scope filter.Predicate) (*store.Asset, error) {
	pred := filter.Eq("id", assetID)
	if scope != nil {
		pred = filter.And(pred, scope)
	}
	where, args := pred.SQL()

	var rows []assetRow
	err := s.db.Raw(`SELECT id, tag, name, status, created_by, assigned_to FROM assets WHERE `+where, args...).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	asset := rowToAsset(rows[0])
	return &asset, nil
}

// CreateAsset inserts an asset owned by the acting user
func (s *AssetsStore) CreateAsset(asset *store.Asset, actingUserID uint) error {
	row := model.Asset{
		Tag:        asset.Tag,
		Name:       asset.Name,
		Status:     asset.Status,
		CreatedBy:  actingUserID,
		AssignedTo: pq.Int64Array(asset.AssignedTo),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return err
	}
	asset.ID = row.ID
	asset.CreatedBy = actingUserID
	return nil
}

func rowToAsset(row assetRow) store.Asset {
	return store.Asset{
		ID:         row.Id,
		Tag:        row.Tag,
		Name:       row.Name,
		Status:     row.Status,
		CreatedBy:  row.CreatedBy,
		AssignedTo: row.AssignedTo,
	}
}
