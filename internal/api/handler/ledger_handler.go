package handler

import (
	"math"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
	"github.com/stampwallet/stamp-ledger/internal/core/ports"
)

// LedgerHandler exposes wallet balances, earn, reset and the audit trail.
type LedgerHandler struct {
	service ports.LoyaltyService
}

func NewLedgerHandler(service ports.LoyaltyService) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// Get returns a wallet's balance in the given store.
//
// @Summary      Wallet balance
// @Tags         ledger
// @Produce      json
// @Param        walletId  path      string  true  "Wallet ID"
// @Param        storeId   query     string  true  "Store ID"
// @Success      200       {object}  domain.WalletState
// @Failure      400       {object}  errorResponse
// @Router       /ledger/{walletId} [get]
func (h *LedgerHandler) Get(c echo.Context) error {
	walletID, err := pathParam(c, "walletId")
	if err != nil {
		return err
	}

	state, err := h.service.GetLedger(c.Request().Context(), c.QueryParam("storeId"), walletID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

// Earn records a purchase against a wallet in the caller's store.
//
// @Summary      Earn stamps
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      earnRequest  true  "Wallet and purchase amount in cents"
// @Success      200   {object}  earnResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /earn [post]
func (h *LedgerHandler) Earn(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	req := earnRequest{AmountCents: centsAmount(math.NaN())}
	if err := c.Bind(&req); err != nil {
		return domain.NewInputError("invalid payload")
	}

	res, err := h.service.Earn(c.Request().Context(), session, ports.EarnInput{
		WalletID:    req.WalletID,
		AmountCents: float64(req.AmountCents),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, earnResponse{OK: true, AuditEntry: res.Entry, StampCap: res.StampCap})
}

// Reset zeroes a wallet in the caller's store. Manager only.
//
// @Summary      Reset wallet
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resetRequest  true  "Wallet to reset"
// @Success      200   {object}  resetResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /wallet/reset [post]
func (h *LedgerHandler) Reset(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewInputError("invalid payload")
	}

	state, err := h.service.Reset(c.Request().Context(), session, req.WalletID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resetResponse{OK: true, WalletState: *state})
}

// Audit lists the caller's store audit trail, newest first. Manager only.
//
// @Summary      Audit trail
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  auditResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /audit [get]
func (h *LedgerHandler) Audit(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	listing, err := h.service.ListAudit(c.Request().Context(), session)
	if err != nil {
		return err
	}
	items := listing.Items
	if items == nil {
		items = []domain.AuditEntry{}
	}
	return c.JSON(http.StatusOK, auditResponse{StoreID: listing.StoreID, Items: items})
}

// pathParam returns a decoded route parameter. Echo routes on URL.RawPath
// when the request carries escapes such as %2F, and the parameter is then
// still escaped; otherwise it is already decoded and must be used as is.
func pathParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", domain.NewInputError("invalid " + name)
	}
	return decoded, nil
}
