package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"intrack/utils"
)

func TestRegisterRequestValidation(t *testing.T) {
	valid := RegisterRequest{
		Name:     "Dana Ito",
		Email:    "dana@example.com",
		Password: "secret1",
		Role:     "Engineer",
	}
	assert.NoError(t, utils.Validate.Struct(valid))

	// Every documented role is accepted.
	for _, role := range []string{"Admin", "Manager", "Engineer", "Accountant"} {
		req := valid
		req.Role = role
		assert.NoError(t, utils.Validate.Struct(req), role)
	}

	t.Run("invalid role", func(t *testing.T) {
		req := valid
		req.Role = "Intern"
		assert.Error(t, utils.Validate.Struct(req))
	})

	t.Run("lowercase role is not a role", func(t *testing.T) {
		req := valid
		req.Role = "engineer"
		assert.Error(t, utils.Validate.Struct(req))
	})

	t.Run("bad email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"
		assert.Error(t, utils.Validate.Struct(req))
	})

	t.Run("short password", func(t *testing.T) {
		req := valid
		req.Password = "12345"
		assert.Error(t, utils.Validate.Struct(req))
	})
}

func TestCreateExpenseRequestValidation(t *testing.T) {
	valid := CreateExpenseRequest{
		ProjectID: "P1",
		Amount:    decimal.NewFromFloat(100.0),
		Currency:  "USD",
	}
	assert.NoError(t, utils.Validate.Struct(valid))

	type testCase struct {
		name     string
		currency string
	}
	for _, tc := range []testCase{
		{"lowercase currency", "usd"},
		{"too short", "US"},
		{"too long", "USDX"},
		{"digits", "123"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			req.Currency = tc.currency
			assert.Error(t, utils.Validate.Struct(req))
		})
	}

	t.Run("missing project", func(t *testing.T) {
		req := valid
		req.ProjectID = ""
		assert.Error(t, utils.Validate.Struct(req))
	})
}

func TestDecisionRequestValidation(t *testing.T) {
	assert.NoError(t, utils.Validate.Struct(DecisionRequest{Action: "approve"}))
	assert.NoError(t, utils.Validate.Struct(DecisionRequest{Action: "reject", Note: "too costly"}))
	assert.Error(t, utils.Validate.Struct(DecisionRequest{Action: "maybe"}))
	assert.Error(t, utils.Validate.Struct(DecisionRequest{}))
}

func TestCreateLeaveRequestValidation(t *testing.T) {
	valid := CreateLeaveRequest{
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
		Reason:    "vacation",
	}
	assert.NoError(t, utils.Validate.Struct(valid))

	t.Run("wrong date format", func(t *testing.T) {
		req := valid
		req.StartDate = "2026/09/01"
		assert.Error(t, utils.Validate.Struct(req))
	})

	t.Run("missing end date", func(t *testing.T) {
		req := valid
		req.EndDate = ""
		assert.Error(t, utils.Validate.Struct(req))
	})
}

func TestCreateDocumentRequestValidation(t *testing.T) {
	valid := CreateDocumentRequest{
		ProjectID: "P1",
		Type:      "daily_report",
		Title:     "Day 12 report",
	}
	assert.NoError(t, utils.Validate.Struct(valid))

	for _, docType := range []string{"daily_report", "drawing", "contract", "safety"} {
		req := valid
		req.Type = docType
		assert.NoError(t, utils.Validate.Struct(req), docType)
	}

	t.Run("unknown type", func(t *testing.T) {
		req := valid
		req.Type = "photo"
		assert.Error(t, utils.Validate.Struct(req))
	})

	t.Run("bad url", func(t *testing.T) {
		req := valid
		req.URL = "::not-a-url"
		assert.Error(t, utils.Validate.Struct(req))
	})
}
