package principal

import (
	"context"
	"errors"
	"net/http"

	"github.com/noreyni/webhook-api/internal/config"
	"go.uber.org/fx"
)

// Principal identifies the caller of a request.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// Resolver extracts the caller identity from an inbound request. The domain
// services never reach into ambient state for the caller; they receive the
// resolved user id as an explicit parameter.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (Principal, error)
}

var ErrUnresolved = errors.New("principal could not be resolved")

// Module provides the placeholder resolver. A real deployment swaps this
// provider for one backed by an actual auth boundary.
var Module = fx.Module("principal",
	fx.Provide(NewStaticResolver),
)

// StaticResolver returns one fixed principal for every request.
type StaticResolver struct {
	p Principal
}

func NewStaticResolver(cfg config.Config) Resolver {
	return &StaticResolver{p: Principal{
		UserID: cfg.PrincipalID,
		Email:  cfg.PrincipalEmail,
		Role:   cfg.PrincipalRole,
	}}
}

func (s *StaticResolver) Resolve(_ context.Context, _ *http.Request) (Principal, error) {
	if s.p.UserID == "" {
		return Principal{}, ErrUnresolved
	}
	return s.p, nil
}

type contextKey struct{}

// WithPrincipal stores the principal in the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal stored by the middleware, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
