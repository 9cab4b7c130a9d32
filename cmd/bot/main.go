package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/speedyfix/auto-garage/internal/bot/channel"
	"github.com/speedyfix/auto-garage/internal/bot/dialog"
	"github.com/speedyfix/auto-garage/internal/bot/recognizer"
	"github.com/speedyfix/auto-garage/internal/bot/session"
	"github.com/speedyfix/auto-garage/internal/config"
	"github.com/speedyfix/auto-garage/internal/garageapi"
	"github.com/speedyfix/auto-garage/internal/middleware"
)

func main() {

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	api := garageapi.New(cfg.GarageAPIUrl)

	var rec recognizer.Recognizer
	if cfg.CLUEndpoint != "" {
		rec = recognizer.NewCLU(cfg.CLUEndpoint, cfg.CLUKey, cfg.CLUProject, cfg.CLUDeployment)
		logger.Info("using CLU recognizer", zap.String("endpoint", cfg.CLUEndpoint))
	} else {
		rec = recognizer.NewKeyword()
		logger.Info("using keyword recognizer")
	}

	var sessions session.Store
	if cfg.RedisAddr != "" {
		sessions, err = session.NewRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		logger.Info("using redis session store", zap.String("addr", cfg.RedisAddr))
	} else {
		sessions = session.NewMemory()
		logger.Info("using in-memory session store")
	}

	d := dialog.New(api, rec)
	handler := channel.NewHandler(d, sessions, logger)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.Register(r)

	logger.Info("SpeedyFix bot running", zap.String("addr", cfg.BotAddr()))
	if err := r.Run(cfg.BotAddr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
