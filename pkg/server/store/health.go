package store

// HealthStore abstracts readiness checks against storage.
type HealthStore interface {
	// Ping verifies database connectivity.
	Ping() error
}
