package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/x-xyz/artgallery/base/ctx"
	"github.com/x-xyz/artgallery/base/log"
	bValidator "github.com/x-xyz/artgallery/base/validator"
	"github.com/x-xyz/artgallery/domain"
	mmiddleware "github.com/x-xyz/artgallery/middleware"
	"github.com/x-xyz/artgallery/service/chain"
	"github.com/x-xyz/artgallery/service/chain/contract"
	"github.com/x-xyz/artgallery/service/pinata"
	artwork_delivery "github.com/x-xyz/artgallery/stores/artwork/delivery/http"
	artwork_usecase "github.com/x-xyz/artgallery/stores/artwork/usecase"
	file_usecase "github.com/x-xyz/artgallery/stores/file/usecase"
	hc_delivery "github.com/x-xyz/artgallery/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/artgallery/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/artgallery/stores/healthcheck/usecase"
	metadata_usecase "github.com/x-xyz/artgallery/stores/metadata/usecase"
	web_resource_repository "github.com/x-xyz/artgallery/stores/web_resource/repository"

	_ "github.com/x-xyz/artgallery/app/api/docs"
)

// readConfig loads the yaml file named by --config into the global viper,
// environment variables take precedence over the file
func readConfig() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path of the yaml config file")
	pflag.Parse()

	setDefaults(viper.GetViper())
	bindEnv(viper.GetViper())

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	if err := viper.ReadInConfig(); err != nil {
		// env only deployments run without a file
		log.Log().WithFields(log.Fields{"err": err, "config": *configFile}).Warn("viper.ReadInConfig failed")
	}

	if viper.GetBool(`debug`) {
		log.SetDebug(true)
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			Daedalus Art Gallery API
//	@version		1.0
//	@description	Minted artworks read from chain and ipfs, and artwork uploads for minting.
func main() {
	defer log.Sync()
	readConfig()
	context := ctx.Background()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		context.WithField("err", err).Fatal("loadConfig failed")
	}

	// init chain service
	context.Info("init chain client")
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrl:             cfg.Chain.RpcUrl,
		CallTimeout:        cfg.Chain.CallTimeout,
		MaxConcurrentCalls: cfg.Chain.MaxConcurrency,
	})
	if err != nil {
		context.WithField("err", err).Fatal("chain.NewClient failed")
	}
	if n, err := chainService.BlockNumber(context); err != nil {
		context.WithFields(log.Fields{"err": err, "rpcUrl": cfg.Chain.RpcUrl}).Fatal("rpc node unreachable")
	} else {
		context.WithField("blockNumber", n).Info("rpc node reachable")
	}
	artworkContract := contract.NewArtwork(chainService, domain.Address(cfg.Chain.ContractAddress))

	// init metadata readers
	httpReader := web_resource_repository.NewHttpReaderRepo(http.Client{}, cfg.Ipfs.Timeout, nil)
	var ipfsReader domain.WebResourceReaderRepository
	switch cfg.Ipfs.Source {
	case ipfsSourceNode:
		ipfsReader = web_resource_repository.NewIpfsNodeApiReaderRepo(ipfsapi.NewShell(cfg.Ipfs.NodeUrl), cfg.Ipfs.Timeout)
	default:
		ipfsReader = web_resource_repository.NewIpfsGatewayReaderRepo(http.Client{}, cfg.Ipfs.Gateway, cfg.Ipfs.Timeout)
	}
	metadata := metadata_usecase.NewMetadataUseCase(&metadata_usecase.MetadataUseCaseCfg{
		HttpReader: httpReader,
		IpfsReader: ipfsReader,
	})

	// init metadata cache
	metadataCache, err := newMetadataCache(context, cfg.MetadataCache)
	if err != nil {
		context.WithField("err", err).Fatal("newMetadataCache failed")
	}

	pinataService := pinata.New(&pinata.Cfg{
		ApiKey:    cfg.Pinata.ApiKey,
		ApiSecret: cfg.Pinata.ApiSecret,
		Endpoint:  cfg.Pinata.Endpoint,
		Timeout:   cfg.Pinata.Timeout,
	})

	// construct repository, usecase and delivery
	artwork := artwork_usecase.New(&artwork_usecase.ArtworkUseCaseCfg{
		Contract:     artworkContract,
		Metadata:     metadata,
		Cache:        metadataCache,
		Gateway:      cfg.Ipfs.Gateway,
		Workers:      cfg.Resolver.Workers,
		MaxAttempts:  cfg.Resolver.MaxAttempts,
		Backoff:      cfg.Resolver.Backoff,
		BackoffLimit: cfg.Resolver.BackoffLimit,
	})
	file := file_usecase.New(pinataService)
	hc := hc_usecase.New(hc_repo.New(chainService))

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowCredentials: true,
	}))
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	e.GET("/", root)
	hc_delivery.New(e, hc)
	artwork_delivery.New(e, artwork, file)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(cfg.Server.Address); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")

	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}

// @Summary Root
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Welcome to the Daedalus art gallery API",
	})
}
