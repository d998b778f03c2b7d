package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/base/delivery"
	"github.com/passethub/marketplace/domain"
	"github.com/passethub/marketplace/domain/auction"
	"github.com/passethub/marketplace/domain/wallet"
	"github.com/passethub/marketplace/middleware"
	"github.com/passethub/marketplace/service/cache"
	"github.com/passethub/marketplace/service/chain/contract"
)

type handler struct {
	auction     auction.UseCase
	session     wallet.Session
	marketplace contract.Marketplace
	cache       cache.Service
}

func New(
	e *echo.Echo,
	auctionUseCase auction.UseCase,
	session wallet.Session,
	marketplace contract.Marketplace,
	cacheService cache.Service) {
	h := &handler{auctionUseCase, session, marketplace, cacheService}

	gs := e.Group("/auctions")

	gs.GET("/active", h.getActive)

	gs.POST("", h.create)

	g := e.Group("/auction/:id")

	g.GET("", h.get)

	g.GET("/bids", h.getBids)

	g.POST("/bids", h.placeBid)

	g.POST("/buy", h.buyNow)

	g.POST("/end", h.end)

	g.POST("/cancel", h.cancel)

	e.GET("/account/:address/auctions", h.getUserAuctions, middleware.IsValidAddress("address"))

	e.GET("/account/:address/pending-returns", h.getPendingReturns, middleware.IsValidAddress("address"))

	e.GET("/marketplace/fee", h.getFee)

	e.POST("/withdraw", h.withdraw)
}

func (h *handler) getActive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	auctions, err := h.auction.GetActiveAuctions(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, auctions)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	a, err := h.auction.GetAuctionById(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, a)
}

func (h *handler) getBids(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	bids, err := h.auction.GetBidsForAuction(ctx, c.Param("id"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, bids)
}

type createPayload struct {
	TokenId         string          `json:"tokenId" validate:"required"`
	ContractTokenId string          `json:"contractTokenId" validate:"required"`
	StartPrice      decimal.Decimal `json:"startPrice"`
	DurationSeconds int64           `json:"durationSeconds" validate:"gt=0"`
	ReservePrice    decimal.Decimal `json:"reservePrice"`
	BuyNowPrice     decimal.Decimal `json:"buyNowPrice"`
	EnableReserve   bool            `json:"enableReserve"`
	EnableBuyNow    bool            `json:"enableBuyNow"`
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &createPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	account, err := h.session.SelectedAccount(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	}

	a, err := h.auction.CreateAuction(ctx, auction.CreateAuctionData{
		TokenId:         p.TokenId,
		ContractTokenId: domain.TokenId(p.ContractTokenId),
		StartPrice:      p.StartPrice,
		Duration:        time.Duration(p.DurationSeconds) * time.Second,
		ReservePrice:    p.ReservePrice,
		BuyNowPrice:     p.BuyNowPrice,
		EnableReserve:   p.EnableReserve,
		EnableBuyNow:    p.EnableBuyNow,
	}, account.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, a)
}

type bidPayload struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &bidPayload{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	account, err := h.session.SelectedAccount(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	}

	if err := h.auction.PlaceBid(ctx, c.Param("id"), account.Address, p.Amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) buyNow(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	account, err := h.session.SelectedAccount(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	}

	if err := h.auction.BuyNow(ctx, c.Param("id"), account.Address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) end(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.auction.EndAuction(ctx, c.Param("id")); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if err := h.auction.CancelAuction(ctx, c.Param("id")); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getUserAuctions(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	auctions, err := h.auction.GetUserAuctions(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, auctions)
}

func (h *handler) getPendingReturns(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	amount, err := h.marketplace.PendingReturns(ctx, domain.Address(c.Param("address")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, amount)
}

// getFee serves the contract fee from cache, the value only changes when the
// contract owner updates it.
func (h *handler) getFee(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fee := &decimal.Decimal{}
	err := h.cache.GetByFunc(ctx, "marketplace:fee", fee, func() (interface{}, error) {
		v, err := h.marketplace.MarketplaceFee(ctx)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, fee)
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	tx, err := h.marketplace.Withdraw(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	if _, err := tx.Wait(ctx); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, tx.Hash())
}
