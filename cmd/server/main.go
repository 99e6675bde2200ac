package main

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/awesomegic/gic-bank/pkg/configpkg"

	"github.com/awesomegic/gic-bank/internal/accountdelivery"
	"github.com/awesomegic/gic-bank/internal/accountrepo"
	"github.com/awesomegic/gic-bank/internal/accountservice"
	"github.com/awesomegic/gic-bank/internal/interestruledelivery"
	"github.com/awesomegic/gic-bank/internal/interestrulerepo"
	"github.com/awesomegic/gic-bank/internal/interestruleservice"
	"github.com/awesomegic/gic-bank/internal/middleware"
	"github.com/awesomegic/gic-bank/internal/scheduler"
	"github.com/awesomegic/gic-bank/internal/statementdelivery"
	"github.com/awesomegic/gic-bank/internal/statementservice"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	server, sched, err := createServer(logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if sched != nil {
		if err = sched.Start(config.AccrualSchedule); err != nil {
			logger.Fatal().Err(err).Msg("cannot start accrual scheduler")
		}
		defer sched.Stop()
	}

	err = server.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(logger zerolog.Logger, config configpkg.Config) (*gin.Engine, *scheduler.Scheduler, error) {
	accountRepo := accountrepo.NewRepoMem()
	ruleRepo := interestrulerepo.NewRepoMem()

	accountService := accountservice.New(accountRepo)
	ruleService := interestruleservice.New(ruleRepo)
	statementService := statementservice.New(accountRepo, ruleRepo)

	accountHandler := accountdelivery.NewHandler(accountService)
	ruleHandler := interestruledelivery.NewHandler(ruleService)
	statementHandler := statementdelivery.NewHandler(statementService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/transactions", accountHandler.CreateTransaction)
	server.GET("/accounts/:id/transactions", accountHandler.ListTransactions)

	server.POST("/interest-rules", ruleHandler.Upsert)
	server.GET("/interest-rules", ruleHandler.List)

	server.GET("/accounts/:id/statement", statementHandler.Get)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("date8", accountdelivery.ValidDate8); err != nil {
			return nil, nil, err
		}

		if err := v.RegisterValidation("ratepercent", interestruledelivery.ValidRatePercent); err != nil {
			return nil, nil, err
		}
	}

	var sched *scheduler.Scheduler
	if config.AccrualEnabled {
		sched = scheduler.New(logger, accountRepo, statementService)
	}

	return server, sched, nil
}
