package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrLoanNotFound         = errors.New("loan request not found")
	ErrLoanNotApproved      = errors.New("loan request is not approved")
	ErrLoanAlreadyDecided   = errors.New("loan request already decided")
	ErrLoanFullyRepaid      = errors.New("loan is fully repaid")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrProposalNotFound     = errors.New("proposal not found")
	ErrProposalClosed       = errors.New("voting on this proposal is closed")
	ErrAlreadyVoted         = errors.New("member has already voted on this proposal")
	ErrPermissionDenied     = errors.New("missing required capability")
	ErrInvalidStatusChange  = errors.New("invalid status transition")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeMemberNotFound       = "MEMBER_NOT_FOUND"
	ErrCodeLoanNotFound         = "LOAN_NOT_FOUND"
	ErrCodeContributionNotFound = "CONTRIBUTION_NOT_FOUND"
	ErrCodeLoanNotApproved      = "LOAN_NOT_APPROVED"
	ErrCodeLoanAlreadyDecided   = "LOAN_ALREADY_DECIDED"
	ErrCodeLoanFullyRepaid      = "LOAN_FULLY_REPAID"
	ErrCodeProposalNotFound     = "PROPOSAL_NOT_FOUND"
	ErrCodeProposalClosed       = "PROPOSAL_CLOSED"
	ErrCodeAlreadyVoted         = "ALREADY_VOTED"
	ErrCodePermissionDenied     = "PERMISSION_DENIED"
	ErrCodeInvalidStatusChange  = "INVALID_STATUS_CHANGE"
	ErrCodeRuleViolation        = "RULE_VIOLATION"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapMemberNotFound(memberID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeMemberNotFound,
		fmt.Sprintf("Member with ID %d not found", memberID),
		ErrMemberNotFound,
	)
}

func WrapLoanNotFound(loanID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan request with ID %d not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapLoanNotApproved(loanID int64, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotApproved,
		fmt.Sprintf("Loan request %d is %s; repayments require an approved loan", loanID, status),
		ErrLoanNotApproved,
	)
}

func WrapContributionNotFound(contributionID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeContributionNotFound,
		fmt.Sprintf("Contribution with ID %d not found", contributionID),
		ErrContributionNotFound,
	)
}

func WrapLoanAlreadyDecided(loanID int64, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanAlreadyDecided,
		fmt.Sprintf("Loan request %d is already %s", loanID, status),
		ErrLoanAlreadyDecided,
	)
}

func WrapLoanFullyRepaid(loanID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanFullyRepaid,
		fmt.Sprintf("Loan request %d has no outstanding balance", loanID),
		ErrLoanFullyRepaid,
	)
}

func WrapProposalClosed(proposalID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeProposalClosed,
		fmt.Sprintf("Voting on proposal %d is closed", proposalID),
		ErrProposalClosed,
	)
}

func WrapAlreadyVoted(proposalID, voterID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeAlreadyVoted,
		fmt.Sprintf("Member %d has already voted on proposal %d", voterID, proposalID),
		ErrAlreadyVoted,
	)
}

func WrapPermissionDenied(capability string) *BusinessError {
	return NewBusinessError(
		ErrCodePermissionDenied,
		fmt.Sprintf("Caller lacks the %q capability", capability),
		ErrPermissionDenied,
	)
}

// WrapRuleViolation carries a loan economics rule failure (ceiling, balance,
// minimum tranche, guarantor rules) up to the HTTP layer with its context
// message intact.
func WrapRuleViolation(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeRuleViolation,
		err.Error(),
		err,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
