package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/service"
	"github.com/Akanael21/FriendlyBanks/pkg/response"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapViewMembers) == nil {
		return
	}

	loans, err := h.service.ListLoans(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, loans)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapViewMembers) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid loan request id", err)
		return
	}

	loan, err := h.service.GetLoan(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, loan)
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := requireCapability(w, r, domain.CapRequestLoans)
	if identity == nil {
		return
	}

	var request domain.CreateLoanRequestRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	// Requesting on another member's behalf needs the elevated capability.
	if request.Member != identity.MemberID &&
		!identity.Capabilities.Has(domain.CapRequestLoansForAny) {
		response.Forbidden(w, "Cannot request a loan for another member")
		return
	}

	loan, err := h.service.CreateLoanRequest(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, loan)
}

// UpdateStatus handles PATCH with {"status": "approved"|"rejected"}.
func (h *LoanHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapApproveLoans) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid loan request id", err)
		return
	}

	var request domain.UpdateLoanStatusRequest
	if err := decodeJSON(r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	loan, err := h.service.UpdateStatus(r.Context(), id, request.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, loan)
}

func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapApproveLoans) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid loan request id", err)
		return
	}

	if err := h.service.DeleteLoan(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *LoanHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapViewMembers) == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.BadRequest(w, "Invalid loan request id", err)
		return
	}

	summary, err := h.service.GetSummary(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, summary)
}

// PreviewTerms answers "how much can I borrow and at what cost" without
// creating anything. Amount is optional; without it only the ceiling is
// meaningful.
func (h *LoanHandler) PreviewTerms(w http.ResponseWriter, r *http.Request) {
	identity := requireCapability(w, r, domain.CapRequestLoans)
	if identity == nil {
		return
	}

	memberID := identity.MemberID
	if raw := r.URL.Query().Get("member"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid member filter", err)
			return
		}
		if parsed != identity.MemberID &&
			!identity.Capabilities.Has(domain.CapRequestLoansForAny) {
			response.Forbidden(w, "Cannot preview terms for another member")
			return
		}
		memberID = parsed
	}

	amount := decimal.Zero
	if raw := r.URL.Query().Get("amount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			response.BadRequest(w, "Invalid amount", err)
			return
		}
		amount = parsed
	}

	terms, err := h.service.PreviewTerms(r.Context(), memberID, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, terms)
}

func (h *LoanHandler) ListRepayments(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapViewMembers) == nil {
		return
	}

	var loanID int64
	if raw := r.URL.Query().Get("loan_request"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid loan_request filter", err)
			return
		}
		loanID = parsed
	}

	repayments, err := h.service.ListRepayments(r.Context(), loanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, repayments)
}

func (h *LoanHandler) CreateRepayment(w http.ResponseWriter, r *http.Request) {
	if requireCapability(w, r, domain.CapRecordRepayments) == nil {
		return
	}

	var request domain.CreateRepaymentRequest
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

	result, err := h.service.MakeRepayment(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, result)
}
