package main

import (
	"github.com/gin-gonic/gin"

	"shareit/internal/config"
	"shareit/internal/gateway"
	"shareit/internal/pkg/logging"
)

func main() {
	cfg := config.LoadGateway()
	log := logging.New("shareit-gateway", cfg.LogLevel)

	handler := gateway.NewHandler(gateway.NewClient(cfg.ServerURL), log)

	gin.SetMode(gin.ReleaseMode)
	r := handler.Router()

	log.Info().Str("addr", cfg.Addr).Str("server", cfg.ServerURL).Msg("gateway listening")
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("gateway stopped")
	}
}
