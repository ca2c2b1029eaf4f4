package main

import (
	"fmt"

	"stock-audit/internal/config"
	"stock-audit/internal/database"
	"stock-audit/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	config.Logger().Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		config.Logger().Fatalf("server error: %v", err)
	}
}
