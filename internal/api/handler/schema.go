package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// --- Stores ---

type storesResponse struct {
	Stores []domain.Store `json:"stores"`
}

// --- Auth ---

type loginRequest struct {
	StoreID  string `json:"storeId"  validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string             `json:"token"`
	Store domain.Store       `json:"store"`
	User  domain.UserSummary `json:"user"`
}

type meResponse struct {
	User  domain.UserSummary `json:"user"`
	Store domain.Store       `json:"store"`
}

// --- Ledger ---

// centsAmount accepts a JSON number or a numeric string. Anything that does
// not parse is kept as NaN and rejected by the service, so a malformed amount
// yields the same message as a fractional one.
type centsAmount float64

func (a *centsAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = centsAmount(math.NaN())
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			f = math.NaN()
		}
		*a = centsAmount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*a = centsAmount(math.NaN())
		return nil
	}
	*a = centsAmount(f)
	return nil
}

type earnRequest struct {
	WalletID    string      `json:"walletId"`
	AmountCents centsAmount `json:"amountCents" swaggertype:"number"`
}

// earnResponse flattens the audit entry alongside ok and stampCap.
type earnResponse struct {
	OK bool `json:"ok"`
	domain.AuditEntry
	StampCap int `json:"stampCap"`
}

type resetRequest struct {
	WalletID string `json:"walletId"`
}

type resetResponse struct {
	OK bool `json:"ok"`
	domain.WalletState
}

type auditResponse struct {
	StoreID string              `json:"storeId"`
	Items   []domain.AuditEntry `json:"items"`
}
