package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ledgepoint/assetd/pkg/authz"
	"github.com/ledgepoint/assetd/pkg/identity"
)

// Claims are the assetd login token claims. The ability list is
// deliberately absent: it is resolved fresh from the grant store on every
// request so matrix edits are never masked by a stale credential.
type Claims struct {
	Email  string `json:"email"`
	RoleID int64  `json:"roleId"`
	jwt.RegisteredClaims
}

// JWTAuthenticator is middleware that validates login tokens and attaches
// the resolved principal to the request context.
type JWTAuthenticator struct {
	key      []byte
	resolver *authz.Resolver
}

// NewJWTAuthenticator creates a new JWT authenticator middleware
func NewJWTAuthenticator(key []byte, resolver *authz.Resolver) *JWTAuthenticator {
	return &JWTAuthenticator{key: key, resolver: resolver}
}

// IssueToken signs a login token for a user
func (j *JWTAuthenticator) IssueToken(userID uint, email string, roleID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:  email,
		RoleID: int64(roleID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.key)
}

// Middleware returns an HTTP middleware that validates login tokens and
// resolves the principal's abilities for this request.
func (j *JWTAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Malformed authorization header"))
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return j.key, nil
		})
		if err != nil || !token.Valid {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Invalid authorization token"))
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Invalid authorization token"))
			return
		}

		principal := &identity.Principal{
			UserID: uint(userID),
			Email:  claims.Email,
			RoleID: claims.RoleID,
			// Fresh per request; never cached in the token.
			Abilities: j.resolver.Resolve(claims.RoleID),
		}
		if claims.IssuedAt != nil {
			principal.IssuedAt = claims.IssuedAt.Time
		}
		if claims.ExpiresAt != nil {
			principal.ExpiresAt = claims.ExpiresAt.Time
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), principal)))
	})
}
