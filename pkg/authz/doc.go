// Package authz implements the assetd authorization engine.
//
// Grants are (role, resource, action) rows; the Resolver turns a role id
// into its effective (module, action) ability list and exposes the
// capability predicates every business service consults. The Gate enforces
// a declared (module, action) requirement at the request boundary, and the
// Matrix editor handles bulk replacement of a role's grant set from the
// admin permission matrix.
//
// Action codes are C, V, VO, E, EO, D and DO. The O-suffixed codes scope a
// capability to rows owned by the acting principal; when both a broad code
// and its own-variant are granted, the own-variant wins.
package authz
