// Package identity carries the authenticated principal through a request.
//
// The principal combines the verified token claims (user id, email, role id)
// with the ability list resolved from the grant store for this request.
package identity
