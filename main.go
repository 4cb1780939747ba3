package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordduel/go-server/internal/history"
	"github.com/wordduel/go-server/internal/httpserver"
	"github.com/wordduel/go-server/internal/session"
	"github.com/wordduel/go-server/internal/single"
	"github.com/wordduel/go-server/internal/words"
	"github.com/wordduel/go-server/internal/ws"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// The dictionary must be ready before any connection is accepted.
	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", words.Count()).Msg("dictionary loaded")

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	hist := history.NewStore(db)
	reg := session.NewRegistry()
	hub := ws.NewHub(reg, hist)
	go hub.Run()

	srv := httpserver.New(hub, reg, single.NewMemoryStore(), hist)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting go-server")
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
