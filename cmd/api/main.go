package main

import (
	"net/http"
	"os"
	"time"

	"med-adherence-tracker/internal/adapters/auth/jwtauth"
	"med-adherence-tracker/internal/platform/logger"
	"med-adherence-tracker/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env opcional para dev; en prod las vars vienen del entorno
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Warn("JWT_SECRET not set, using dev secret", nil)
		secret = "dev-secret"
	}
	tokens := jwtauth.New(secret, time.Hour)

	r := router.NewRouter(router.Options{
		Verifier: tokens,
		Issuer:   tokens,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
