package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stampwallet/stamp-ledger/internal/core/ports"
)

type StoreHandler struct {
	service ports.LoyaltyService
}

func NewStoreHandler(service ports.LoyaltyService) *StoreHandler {
	return &StoreHandler{service: service}
}

// List returns every registered store.
//
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Success      200  {object}  storesResponse
// @Router       /stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, storesResponse{Stores: h.service.ListStores(c.Request().Context())})
}
