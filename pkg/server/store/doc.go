// Package store defines the storage abstractions used by the assetd server.
//
// Each concern gets a narrow interface here, with the GORM-backed
// implementations in the gorm subpackage. Handlers and the authorization
// engine depend only on these interfaces so tests can substitute mocks.
package store
