package handlers

import (
	"github.com/shopspring/decimal"
)

// Request payloads. Validation rules live in the `validate` tags and run
// through utils.Validate; a failure maps to 400.

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=Admin Manager Engineer Accountant"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateProjectRequest struct {
	Title       string   `json:"title" validate:"required"`
	Client      string   `json:"client" validate:"required"`
	Status      string   `json:"status,omitempty"`
	ManagerID   string   `json:"managerId,omitempty"`
	EngineerIDs []string `json:"engineerIds,omitempty"`
}

type CreateExpenseRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	// Amount is range-checked in the handler; decimal.Decimal carries exact
	// values through parsing.
	Amount      decimal.Decimal `json:"amount" validate:"-"`
	Currency    string          `json:"currency" validate:"required,len=3,alpha,uppercase"`
	Description string          `json:"description,omitempty"`
}

// DecisionRequest is the body of both approve endpoints.
type DecisionRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Note   string `json:"note,omitempty"`
}

type CreateLeaveRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason,omitempty"`
}

type CreateDocumentRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=daily_report drawing contract safety"`
	Title     string `json:"title" validate:"required"`
	URL       string `json:"url,omitempty" validate:"omitempty,url"`
}
