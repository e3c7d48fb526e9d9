package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/service"
	"github.com/Akanael21/FriendlyBanks/pkg/response"
	"github.com/Akanael21/FriendlyBanks/pkg/utils"
)

type ContributionHandler struct {
	service   *service.ContributionService
	validator *validator.Validate
}

func NewContributionHandler(service *service.ContributionService) *ContributionHandler {
	return &ContributionHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *ContributionHandler) List(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapViewMembers) == nil {
		return
	}

	var memberID int64
	if raw := r.URL.Query().Get("member"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid member filter", err)
			return
		}
		memberID = parsed
	}

	contributions, err := h.service.List(r.Context(), memberID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, contributions)
}

func (h *ContributionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapRecordContributions) == nil {
		return
	}

	var request domain.CreateContributionRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if !request.Amount.IsPositive() {
		response.BadRequest(w, "Amount must be a positive number", nil)
		return
	}

	contribution, err := h.service.Create(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, contribution)
}

// Update replaces a contribution's amount and date. The member's Berry score
// is re-adjusted: the original points are reversed and the new ones applied.
func (h *ContributionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapEditContributions) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid contribution id", err)
		return
	}

	var request domain.CreateContributionRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	if !request.Amount.IsPositive() {
		response.BadRequest(w, "Amount must be a positive number", nil)
		return
	}

	contribution, err := h.service.Update(r.Context(), id, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, contribution)
}

func (h *ContributionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapEditContributions) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid contribution id", err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	response.NoContent(w)
}

// PreviewImpact shows the points change and late fee a contribution would
// carry, without recording it. Date defaults to today.
func (h *ContributionHandler) PreviewImpact(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapViewMembers) == nil {
		return
	}

	raw := r.URL.Query().Get("amount")
	if raw == "" {
		response.BadRequest(w, "Missing amount", nil)
		return
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		response.BadRequest(w, "Invalid amount", err)
		return
	}

	date := time.Now()
	if rawDate := r.URL.Query().Get("date"); rawDate != "" {
		parsed, err := utils.ParseDate(rawDate)
		if err != nil {
			response.BadRequest(w, "Invalid date, expected YYYY-MM-DD", err)
			return
		}
		date = parsed
	}

	response.Success(w, h.service.PreviewImpact(amount, date))
}
