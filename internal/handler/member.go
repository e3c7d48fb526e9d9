package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/service"
	"github.com/Akanael21/FriendlyBanks/pkg/response"
)

type MemberHandler struct {
	service   *service.MemberService
	validator *validator.Validate
}

func NewMemberHandler(service *service.MemberService) *MemberHandler {
	return &MemberHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapViewMembers) == nil {
		return
	}

	members, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, members)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapViewMembers) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid member id", err)
		return
	}

	member, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, member)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapManageMembers) == nil {
		return
	}

	var request domain.CreateMemberRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	member, err := h.service.Create(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapManageMembers) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid member id", err)
		return
	}

	var request domain.UpdateMemberRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	member, err := h.service.Update(r.Context(), id, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, member)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapManageMembers) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid member id", err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	response.NoContent(w)
}
