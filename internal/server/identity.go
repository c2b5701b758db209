package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/daniel/jobboard/internal/server/middleware"
)

// accountDirectory is the lookup surface the resolver needs: one point
// lookup per account collection.
type accountDirectory interface {
	CandidateExists(ctx context.Context, id uuid.UUID) (bool, error)
	CompanyExists(ctx context.Context, id uuid.UUID) (bool, error)
	AdminExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// errUnauthenticated is the single failure every resolution path collapses
// to. Expired signature, wrong secret and deleted account are deliberately
// indistinguishable to the caller; the distinction lives in logs only.
var errUnauthenticated = fmt.Errorf("unauthenticated")

// resolveOrder is the fixed chain the polymorphic resolver walks, stopping
// at the first kind whose secret verifies and whose account still exists.
var resolveOrder = []middleware.Kind{
	middleware.KindCandidate,
	middleware.KindCompany,
	middleware.KindAdministrator,
}

// IdentityResolver classifies bearer tokens into principals by trying each
// kind's signing secret in order and confirming the account still exists.
type IdentityResolver struct {
	tokens *TokenService
	dir    accountDirectory
	logger *zap.Logger
}

// NewIdentityResolver creates a resolver over the given token service and
// account directory.
func NewIdentityResolver(tokens *TokenService, dir accountDirectory, logger *zap.Logger) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, dir: dir, logger: logger}
}

// Resolve walks the candidate → company → administrator chain and returns
// the first principal that verifies and exists. All three failing yields
// the one opaque unauthenticated error.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (middleware.Principal, error) {
	for _, kind := range resolveOrder {
		principal, err := r.ResolveKind(ctx, token, kind)
		if err == nil {
			return principal, nil
		}
	}
	return middleware.Principal{}, errUnauthenticated
}

// ResolveKind attempts resolution against exactly one kind. A signature or
// lookup failure does not fall through to the other kinds.
func (r *IdentityResolver) ResolveKind(ctx context.Context, token string, kind middleware.Kind) (middleware.Principal, error) {
	id, err := r.tokens.Verify(kind, token)
	if err != nil {
		return middleware.Principal{}, errUnauthenticated
	}

	exists, err := r.accountExists(ctx, kind, id)
	if err != nil {
		r.logger.Warn("account lookup failed during token resolution",
			zap.String("kind", string(kind)), zap.Error(err))
		return middleware.Principal{}, errUnauthenticated
	}
	if !exists {
		// Valid signature but the account is gone. Treated the same as a
		// wrong-secret failure so deletion state never leaks.
		return middleware.Principal{}, errUnauthenticated
	}

	return middleware.Principal{Kind: kind, ID: id}, nil
}

func (r *IdentityResolver) accountExists(ctx context.Context, kind middleware.Kind, id uuid.UUID) (bool, error) {
	switch kind {
	case middleware.KindCandidate:
		return r.dir.CandidateExists(ctx, id)
	case middleware.KindCompany:
		return r.dir.CompanyExists(ctx, id)
	case middleware.KindAdministrator:
		return r.dir.AdminExists(ctx, id)
	}
	return false, fmt.Errorf("unknown principal kind: %q", kind)
}
