// Package db provides the GORM/PostgreSQL connection for assetd.
package db
