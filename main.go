package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/centsible/backend/internal/config"
	"github.com/centsible/backend/internal/models"
	"github.com/centsible/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg := config.Load()

	// Connect to the database. Postgres when DB_HOST is set, a local
	// sqlite file otherwise.
	if cfg.DBHost != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		if err := models.ConnectPostgres(dsn); err != nil {
			log.Fatal().Msg(err.Error())
		}
	} else {
		if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
			log.Fatal().Msg(err.Error())
		}

		dsn := filepath.Join(cfg.DataDir, "gorm.db?_pragma=foreign_keys(1)")
		if err := models.Connect(dsn); err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	r, err := router.NewWithConfig(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
