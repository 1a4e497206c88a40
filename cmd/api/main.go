package main

import (
	"log"

	"resume-screener/internal/bootstrap"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Configure(cfg.LogLevel); err != nil {
		log.Fatalf("configure logging: %v", err)
	}
	defer telemetry.Sync()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	telemetry.Info("api.listening", map[string]any{"addr": addr})

	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("api.failed", map[string]any{"error": err})
	}
}
