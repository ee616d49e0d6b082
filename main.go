package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scrambled/go-server/internal/httpserver"
	"github.com/scrambled/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	srv := httpserver.New(db)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting scramble server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
