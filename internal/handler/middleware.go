package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/Akanael21/FriendlyBanks/internal/config"
	"github.com/Akanael21/FriendlyBanks/internal/domain"
	customError "github.com/Akanael21/FriendlyBanks/pkg/errors"
	"github.com/Akanael21/FriendlyBanks/pkg/response"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the caller resolved from a bearer token: which member they are
// and which capabilities their role grants. Handlers gate on capabilities,
// never on role names, so the calculation core stays free of any notion of a
// current user.
type Identity struct {
	MemberID     int64
	Role         string
	Capabilities domain.CapabilitySet
}

var roleCapabilities = map[string]domain.CapabilitySet{
	"member": domain.NewCapabilitySet(
		domain.CapViewMembers,
		domain.CapRequestLoans,
		domain.CapRecordRepayments,
		domain.CapRecordContributions,
		domain.CapVoteOnProposals,
	),
	"committee": domain.NewCapabilitySet(
		domain.CapViewMembers,
		domain.CapRequestLoans,
		domain.CapRequestLoansForAny,
		domain.CapApproveLoans,
		domain.CapRecordRepayments,
		domain.CapRecordContributions,
		domain.CapVoteOnProposals,
	),
	"admin": domain.NewCapabilitySet(
		domain.CapViewMembers,
		domain.CapManageMembers,
		domain.CapRequestLoans,
		domain.CapRequestLoansForAny,
		domain.CapApproveLoans,
		domain.CapRecordRepayments,
		domain.CapRecordContributions,
		domain.CapEditContributions,
		domain.CapVoteOnProposals,
	),
}

// AuthMiddleware resolves the bearer token to an Identity and stores it in
// the request context. Requests without a known token get 401.
func AuthMiddleware(auth config.AuthConfig) func(http.Handler) http.Handler {
	tokens := auth.TokenIdentities()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.Unauthorized(w, "Missing bearer token")
				return
			}

			identity, ok := tokens[token]
			if !ok {
				response.Unauthorized(w, "Unknown token")
				return
			}

			caller := &Identity{
				MemberID:     identity.MemberID,
				Role:         identity.Role,
				Capabilities: roleCapabilities[identity.Role],
			}

			ctx := context.WithValue(r.Context(), identityKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the caller stored by AuthMiddleware.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityKey).(*Identity)
	return identity
}

// requireCapability writes a 403 and returns nil when the caller lacks the
// capability; otherwise it returns the caller.
func requireCapability(w http.ResponseWriter, r *http.Request, capability domain.Capability) *Identity {
	identity := IdentityFromContext(r.Context())
	if identity == nil || !identity.Capabilities.Has(capability) {
		businessErr := customError.WrapPermissionDenied(string(capability))
		response.ErrorWithCode(w, http.StatusForbidden, businessErr.Code, businessErr.Message, nil)
		return nil
	}
	return identity
}
