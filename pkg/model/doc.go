// Package model defines the database models for assetd.
//
// This package contains GORM models that map to the assetd PostgreSQL schema.
//
// # Core Models
//
//   - Role: Named permission profiles referenced by users and grants
//   - Grant: One (role, resource, action) authorization fact
//   - User: Account identities carrying a role
//   - Asset: Managed assets, the ownership-scoped business rows
//
// # Database Schema
//
// The database uses PostgreSQL with the following key tables:
//
//   - resources: Seeded module catalog (migration-seeded, read via Raw SQL)
//   - actions: Seeded action catalog (migration-seeded, read via Raw SQL)
//   - roles: Permission profiles
//   - grants: Role/resource/action grants
//   - users: Accounts
//   - assets: Managed assets with owner columns
package model
