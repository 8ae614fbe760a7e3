package main

import (
	"fmt"
	"log"
	"os"

	corecmd "storebot/core/cmd"
	"storebot/core/database"
	"storebot/core/logger"
	"storebot/internal/bot"

	"github.com/joho/godotenv"
)

func main() {
	// Local development convenience, missing .env is fine.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*bot.AppConfig)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}
			if err := logger.InitLogger(cfg.CoreConfig()); err != nil {
				return nil, fmt.Errorf("logger init failed: %w", err)
			}
			if err := database.RunMigrations(cfg.Database); err != nil {
				return nil, fmt.Errorf("migrations failed: %w", err)
			}
			db, err := database.Connect(cfg.Database)
			if err != nil {
				return nil, fmt.Errorf("database connect failed: %w", err)
			}
			return bot.NewApp(cfg, db), nil
		},
	})
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
