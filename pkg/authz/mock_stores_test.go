package authz

import (
	"github.com/stretchr/testify/mock"

	"github.com/ledgepoint/assetd/pkg/server/store"
)

// MockGrantsStore implements store.GrantsStore for testing using testify/mock
type MockGrantsStore struct {
	mock.Mock
}

func NewMockGrantsStore() *MockGrantsStore {
	return &MockGrantsStore{}
}

func (m *MockGrantsStore) AbilitiesForRole(roleID uint) ([]store.Ability, error) {
	args := m.Called(roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Ability), args.Error(1)
}

func (m *MockGrantsStore) AbilitiesForRoleAndModule(roleID uint, module string) ([]store.Ability, error) {
	args := m.Called(roleID, module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Ability), args.Error(1)
}

func (m *MockGrantsStore) ForRole(roleID uint) ([]store.Grant, error) {
	args := m.Called(roleID)
	return args.Get(0).([]store.Grant), args.Error(1)
}

func (m *MockGrantsStore) ReplaceAll(roleID uint, grants []store.Grant, actingUserID uint) error {
	args := m.Called(roleID, grants, actingUserID)
	return args.Error(0)
}

func (m *MockGrantsStore) DeleteAllForRole(roleID uint) error {
	args := m.Called(roleID)
	return args.Error(0)
}

// MockCatalogStore implements store.CatalogStore for testing using testify/mock
type MockCatalogStore struct {
	mock.Mock
}

func NewMockCatalogStore() *MockCatalogStore {
	return &MockCatalogStore{}
}

func (m *MockCatalogStore) ResourceByName(name string) *store.Resource {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*store.Resource)
}

func (m *MockCatalogStore) ActionByCode(code string) *store.Action {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*store.Action)
}

func (m *MockCatalogStore) ListResources() ([]store.Resource, error) {
	args := m.Called()
	return args.Get(0).([]store.Resource), args.Error(1)
}

func (m *MockCatalogStore) ListActions() ([]store.Action, error) {
	args := m.Called()
	return args.Get(0).([]store.Action), args.Error(1)
}

// MockRolesStore implements store.RolesStore for testing using testify/mock
type MockRolesStore struct {
	mock.Mock
}

func NewMockRolesStore() *MockRolesStore {
	return &MockRolesStore{}
}

func (m *MockRolesStore) RoleExists(roleID uint) bool {
	args := m.Called(roleID)
	return args.Bool(0)
}

func (m *MockRolesStore) FetchRole(roleID uint) *store.Role {
	args := m.Called(roleID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*store.Role)
}

func (m *MockRolesStore) ListRoles() ([]store.Role, error) {
	args := m.Called()
	return args.Get(0).([]store.Role), args.Error(1)
}

func (m *MockRolesStore) CreateRole(name string, actingUserID uint) (*store.Role, error) {
	args := m.Called(name, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Role), args.Error(1)
}

func (m *MockRolesStore) UpdateRole(roleID uint, name string, active bool, actingUserID uint) error {
	args := m.Called(roleID, name, active, actingUserID)
	return args.Error(0)
}

func (m *MockRolesStore) DeleteRole(roleID uint) error {
	args := m.Called(roleID)
	return args.Error(0)
}

func (m *MockRolesStore) CountUsersWithRole(roleID uint) int {
	args := m.Called(roleID)
	return args.Int(0)
}
