package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/base/delivery"
	"github.com/passethub/marketplace/domain/wallet"
)

type handler struct {
	session wallet.Session
}

func New(e *echo.Echo, session wallet.Session) {
	h := &handler{session}

	g := e.Group("/wallet")

	g.GET("/account", h.getAccount)

	g.GET("/balance", h.getBalance)
}

func (h *handler) getAccount(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	account, err := h.session.SelectedAccount(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, account)
}

func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	balance, err := h.session.Balance(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, balance)
}
