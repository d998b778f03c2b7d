package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/base/delivery"
	"github.com/passethub/marketplace/domain"
	"github.com/passethub/marketplace/domain/token"
	"github.com/passethub/marketplace/domain/wallet"
	"github.com/passethub/marketplace/middleware"
)

type handler struct {
	token   token.UseCase
	session wallet.Session
}

func New(e *echo.Echo, tokenUseCase token.UseCase, session wallet.Session) {
	h := &handler{tokenUseCase, session}

	gs := e.Group("/tokens")

	gs.POST("", h.mint)

	g := e.Group("/token/:id")

	g.GET("", h.get)

	g.PUT("/listing", h.updateListing)

	g.DELETE("", h.remove)

	e.GET("/account/:address/tokens", h.getUserTokens, middleware.IsValidAddress("address"))
}

type mintPayload struct {
	To       string         `json:"to"`
	TokenURI string         `json:"tokenURI" validate:"required"`
	Metadata token.Metadata `json:"metadata"`
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &mintPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	t, err := h.token.Mint(ctx, token.MintData{
		To:       domain.Address(p.To),
		TokenURI: p.TokenURI,
		Metadata: p.Metadata,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, t)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	t, err := h.token.GetTokenById(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, t)
}

type listingPayload struct {
	IsForSale bool             `json:"isForSale"`
	Price     *decimal.Decimal `json:"price"`
}

func (h *handler) updateListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &listingPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := h.token.UpdateListing(ctx, c.Param("id"), token.ListingUpdate{
		IsForSale: p.IsForSale,
		Price:     p.Price,
	}); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.token.RemoveToken(ctx, c.Param("id")); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getUserTokens(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	tokens, err := h.token.GetUserTokens(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, tokens)
}
