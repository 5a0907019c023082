// Package gorm provides the GORM-backed implementations of the assetd
// store interfaces.
package gorm
