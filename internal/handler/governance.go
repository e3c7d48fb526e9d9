package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/service"
	"github.com/Akanael21/FriendlyBanks/pkg/response"
)

type GovernanceHandler struct {
	service   *service.GovernanceService
	validator *validator.Validate
}

func NewGovernanceHandler(service *service.GovernanceService) *GovernanceHandler {
	return &GovernanceHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *GovernanceHandler) ListSanctions(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapViewMembers) == nil {
		return
	}

	sanctions, err := h.service.ListSanctions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, sanctions)
}

// VoteOnSanction casts the authenticated member's vote on a sanction and
// returns the updated tally. The voter is always the token's member, never a
// value from the request body.
func (h *GovernanceHandler) VoteOnSanction(w http.ResponseWriter, r *http.Request) {
	identity := requireCapability(w, r, domain.CapVoteOnProposals)
	if identity == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid sanction id", err)
		return
	}

	var request domain.CastVoteRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	tally, err := h.service.VoteOnSanction(r.Context(), id, identity.MemberID, request.Vote)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, tally)
}

func (h *GovernanceHandler) SanctionTally(w http.ResponseWriter, r *http.Request) {
	identity := requireCapability(w, r, domain.CapViewMembers)
	if identity == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid sanction id", err)
		return
	}

	tally, err := h.service.SanctionTally(r.Context(), id, identity.MemberID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, tally)
}

func (h *GovernanceHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapViewMembers) == nil {
		return
	}

	votes, err := h.service.ListVotes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, votes)
}

func (h *GovernanceHandler) VoteOnProposal(w http.ResponseWriter, r *http.Request) {
	identity := requireCapability(w, r, domain.CapVoteOnProposals)
	if identity == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid proposal id", err)
		return
	}

	var request domain.CastVoteRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	tally, err := h.service.VoteOnProposal(r.Context(), id, identity.MemberID, request.Vote)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, tally)
}

func (h *GovernanceHandler) VoteTally(w http.ResponseWriter, r *http.Request) {
	identity := requireCapability(w, r, domain.CapViewMembers)
	if identity == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid proposal id", err)
		return
	}

	tally, err := h.service.VoteTally(r.Context(), id, identity.MemberID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, tally)
}
