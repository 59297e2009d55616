package auth

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.opentelemetry.io/otel"
)

type principalContextKey struct{ name string }

var principalCtxKey = &principalContextKey{"principal"}

var tracer = otel.Tracer("bootcamp-mgmt/authz")

const (
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// Principal is the authenticated caller, as read from the verified token.
type Principal struct {
	ID   string
	Role string
}

func (p Principal) Admin() bool {
	return p.Role == RoleAdmin
}

// ErrorWriter lets the presentation layer keep ownership of how failure
// envelopes are formatted.
type ErrorWriter func(w http.ResponseWriter, status int, message string)

type Authenticator struct {
	auth       *jwtauth.JWTAuth
	writeError ErrorWriter
}

func New(secret []byte, writeError ErrorWriter) *Authenticator {
	return &Authenticator{
		auth:       jwtauth.New("HS256", secret, nil),
		writeError: writeError,
	}
}

// Verifier finds and parses a bearer token on the incoming request.
func (a *Authenticator) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(a.auth)
}

// RequireRole rejects requests whose token is missing, invalid, or carries
// a role outside the given set, and stores the Principal in the request
// context otherwise.
func (a *Authenticator) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error

			_, span := tracer.Start(r.Context(), "check-auth")
			defer func() {
				if err != nil {
					span.RecordError(err)
				}
				span.End()
			}()

			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil || jwt.Validate(token) != nil {
				if err == nil {
					err = errors.New("no valid token on request")
				}
				a.writeError(w, http.StatusUnauthorized, "not authorized to access this route")
				return
			}

			principal := Principal{}
			if sub, ok := claims["sub"].(string); ok {
				principal.ID = sub
			}
			if role, ok := claims["role"].(string); ok {
				principal.Role = role
			}

			if principal.ID == "" {
				err = errors.New("token carries no subject")
				a.writeError(w, http.StatusUnauthorized, "not authorized to access this route")
				return
			}

			if !slices.Contains(roles, principal.Role) {
				err = errors.New("role is not allowed to access this route")
				a.writeError(w, http.StatusForbidden, "user role is not authorized to access this route")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// GetPrincipal extracts the authenticated caller, if any, from the context.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(Principal)
	return p, ok
}
