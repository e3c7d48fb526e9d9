package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	customError "github.com/Akanael21/FriendlyBanks/pkg/errors"
	"github.com/Akanael21/FriendlyBanks/pkg/response"
)

// pathID extracts the {id} route variable.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// decodeJSON parses a request body strictly: unknown fields and non-numeric
// amounts are rejected rather than coerced.
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// writeServiceError maps service errors onto HTTP statuses: not-found errors
// to 404, rule violations and closed/duplicate conditions to 422 or 409, the
// rest to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "Unexpected error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeMemberNotFound,
		customError.ErrCodeLoanNotFound,
		customError.ErrCodeContributionNotFound,
		customError.ErrCodeProposalNotFound:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeAlreadyVoted,
		customError.ErrCodeLoanAlreadyDecided:
		response.Conflict(w, businessErr.Code, businessErr.Message, businessErr.Err)
	case customError.ErrCodeRuleViolation,
		customError.ErrCodeLoanNotApproved,
		customError.ErrCodeLoanFullyRepaid,
		customError.ErrCodeProposalClosed,
		customError.ErrCodeInvalidStatusChange:
		response.UnprocessableEntity(w, businessErr.Code, businessErr.Message, businessErr.Err)
	default:
		response.InternalServerError(w, businessErr.Message, businessErr.Err)
	}
}
