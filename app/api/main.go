package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/passethub/marketplace/base/backoff"
	bCtx "github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/base/database/redisclient"
	"github.com/passethub/marketplace/base/goroutine"
	"github.com/passethub/marketplace/base/log"
	bValidator "github.com/passethub/marketplace/base/validator"
	"github.com/passethub/marketplace/domain"
	"github.com/passethub/marketplace/domain/auction"
	"github.com/passethub/marketplace/domain/keys"
	mmiddleware "github.com/passethub/marketplace/middleware"
	"github.com/passethub/marketplace/service/cache"
	"github.com/passethub/marketplace/service/cache/provider"
	"github.com/passethub/marketplace/service/cache/provider/primitive"
	providerRedis "github.com/passethub/marketplace/service/cache/provider/redis"
	"github.com/passethub/marketplace/service/chain"
	"github.com/passethub/marketplace/service/chain/contract"
	"github.com/passethub/marketplace/service/redis"
	auction_delivery "github.com/passethub/marketplace/stores/auction/delivery/http"
	auction_repository "github.com/passethub/marketplace/stores/auction/repository"
	auction_usecase "github.com/passethub/marketplace/stores/auction/usecase"
	token_delivery "github.com/passethub/marketplace/stores/token/delivery/http"
	token_repository "github.com/passethub/marketplace/stores/token/repository"
	token_usecase "github.com/passethub/marketplace/stores/token/usecase"
	wallet_delivery "github.com/passethub/marketplace/stores/wallet/delivery/http"
	wallet_usecase "github.com/passethub/marketplace/stores/wallet/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}

	viper.BindEnv("chain.privateKey", "MARKETPLACE_PRIVATE_KEY")
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := bCtx.Background()

	// init cache provider, redis when configured, in-process otherwise
	var cacheProvider provider.Provider
	if redisURI := viper.GetString("redis.uri"); redisURI != "" {
		context.Info("init redis cache")
		redisPool := redisclient.MustConnectRedis(redisURI, viper.GetString("redis.password"))
		redisService := redis.New(viper.GetString("redis.name"), redisPool)
		cacheProvider = providerRedis.NewRedis(redisService)
	} else {
		context.Info("init in-process cache")
		cacheProvider = primitive.NewPrimitive("local", viper.GetInt("cache.sizeMb"))
	}
	cacheTtl := viper.GetDuration("cache.ttl")
	auctionCache := cache.New(cache.ServiceConfig{
		Ttl:   cacheTtl,
		Pfx:   keys.PfxAuctionStore,
		Cache: cacheProvider,
	})
	tokenCache := cache.New(cache.ServiceConfig{
		Ttl:   cacheTtl,
		Pfx:   keys.PfxTokenStore,
		Cache: cacheProvider,
	})

	// init chain service
	context.Info("init chain client")
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrl:     viper.GetString("chain.rpcUrl"),
		ChainId:    domain.ChainId(viper.GetInt64("chain.chainId")),
		PrivateKey: viper.GetString("chain.privateKey"),
	})
	if err != nil {
		log.Log().WithField("err", err).Panic("failed to init chain client")
	}

	contractAddress := domain.Address(viper.GetString("contract.address")).ToLower()
	marketplace := contract.NewMarketplace(&contract.MarketplaceCfg{
		ChainService:    chainService,
		ContractAddress: contractAddress,
		ConfirmTimeout:  viper.GetDuration("contract.confirmTimeout"),
	})

	session := wallet_usecase.NewSession(&wallet_usecase.SessionCfg{
		ChainService: chainService,
		AccountName:  viper.GetString("chain.accountName"),
	})

	// construct repository, usecase and delivery
	auctionRepo := auction_repository.NewAuctionRepo(context, auctionCache)
	bidRepo := auction_repository.NewBidRepo()
	tokenRepo := token_repository.NewTokenRepo(context, tokenCache)

	tokenUseCase := token_usecase.NewTokenUseCase(&token_usecase.TokenUseCaseCfg{
		TokenRepo:   tokenRepo,
		Marketplace: marketplace,
		Session:     session,
	})

	minBidIncrement := auction.DefaultMinBidIncrement
	if v := viper.GetString("auction.minBidIncrement"); v != "" {
		minBidIncrement = decimalFromConfig(v)
	}
	auctionUseCase := auction_usecase.NewAuctionUseCase(&auction_usecase.AuctionUseCaseCfg{
		AuctionRepo:     auctionRepo,
		BidRepo:         bidRepo,
		TokenUseCase:    tokenUseCase,
		Marketplace:     marketplace,
		Session:         session,
		Policy:          auction.NewPolicy(minBidIncrement),
		ContractAddress: contractAddress,
	})

	auction_delivery.New(e, auctionUseCase, session, marketplace, auctionCache)
	token_delivery.New(e, tokenUseCase, session)
	wallet_delivery.New(e, session)

	e.GET("/healthcheck", func(c echo.Context) error {
		return c.JSON(http.StatusOK, "ok")
	})

	// background reconciliation keeps the projection honest and clears
	// pending verification flags
	syncCtx, cancelSync := bCtx.WithCancel(context)
	goroutine.RecoverableGo(func() {
		runSyncLoop(syncCtx, auctionUseCase, viper.GetDuration("auction.syncInterval"))
	})

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	cancelSync()
	shutdownCtx, cancel := bCtx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

func decimalFromConfig(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		log.Log().WithFields(log.Fields{"value": v, "err": err}).Panic("invalid decimal in config")
	}
	return d
}

func runSyncLoop(c bCtx.Ctx, auctionUseCase auction.UseCase, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	retry := backoff.NewExponential(time.Second, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := auctionUseCase.SyncWithContract(c); err != nil {
			c.WithField("err", err).Warn("sync failed, backing off")
			if err := retry.Backoff(c); err != nil {
				return
			}
			continue
		}
		retry.Reset()

		select {
		case <-c.Done():
			return
		case <-ticker.C:
		}
	}
}
