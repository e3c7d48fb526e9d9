package domain

// Capability names an action a caller is allowed to perform. Tokens resolve to
// an explicit capability set carried through the request context, so no
// ambient notion of "current user" reaches the calculation core.
type Capability string

const (
	CapViewMembers         Capability = "members.view"
	CapManageMembers       Capability = "members.manage"
	CapRequestLoans        Capability = "loans.request"
	CapRequestLoansForAny  Capability = "loans.request_for_any"
	CapApproveLoans        Capability = "loans.approve"
	CapRecordRepayments    Capability = "loans.repay"
	CapRecordContributions Capability = "contributions.record"
	CapEditContributions   Capability = "contributions.edit"
	CapVoteOnProposals     Capability = "governance.vote"
)

// CapabilitySet is the set of capabilities resolved from a bearer token.
type CapabilitySet map[Capability]struct{}

// NewCapabilitySet builds a set from capability names.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether the set grants a capability.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}
