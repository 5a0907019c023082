package store

import "github.com/ledgepoint/assetd/pkg/filter"

// Asset is a managed asset row.
type Asset struct {
	ID         uint    `json:"id"`
	Tag        string  `json:"tag"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	CreatedBy  uint    `json:"created_by"`
	AssignedTo []int64 `json:"assigned_to"`
}

// AssetOwnerFields are the owner columns consulted when scoping asset reads
// to the acting principal.
var AssetOwnerFields = []filter.OwnerField{
	{Column: "created_by"},
	{Column: "assigned_to", Array: true},
}

// AssetsStore abstracts asset storage. Reads take a scope predicate so
// ownership restriction composes with any caller filter.
type AssetsStore interface {
	// ListAssets returns assets matching the scope predicate.
	ListAssets(scope filter.Predicate) ([]Asset, error)

	// FetchAsset retrieves one asset within the scope predicate, or nil.
	FetchAsset(assetID uint, scope filter.Predicate) (*Asset, error)

	// CreateAsset inserts an asset owned by the acting user.
	CreateAsset(asset *Asset, actingUserID uint) error
}
