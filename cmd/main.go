package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AnthoniusHendriyanto/stepup-service/config"
	"github.com/AnthoniusHendriyanto/stepup-service/db"
	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/handler"
	repo "github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/repository/postgres"
	redisrepo "github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/repository/redis"
	"github.com/AnthoniusHendriyanto/stepup-service/internal/stepup/service"
	"github.com/AnthoniusHendriyanto/stepup-service/pkg/constant"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := db.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	repository := repo.NewPostgresRepository(dbPool)
	challenges := redisrepo.NewChallengeCache(redisClient, "stepup")
	lockouts := redisrepo.NewLockoutTracker(redisClient, "stepup",
		constant.MaxPinAttempts, time.Duration(cfg.LockoutWindowMin)*time.Minute)
	capsules := redisrepo.NewCapsuleRegistry(redisClient, "stepup")

	verifier, err := service.NewFido2Verifier(cfg)
	if err != nil {
		log.Fatalf("webauthn: %v", err)
	}

	webauthnService := service.NewWebAuthnService(repository, challenges, verifier,
		time.Duration(cfg.ChallengeTTLMin)*time.Minute)
	pinVerifier := service.NewPinVerifier(lockouts, constant.MaxPinAttempts)
	capsuleService := service.NewCapsuleService(cfg.CapsuleSecret,
		time.Duration(cfg.CapsuleTTLSec)*time.Second, capsules)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret)

	stepUpHandler := handler.NewStepUpHandler(webauthnService, pinVerifier, capsuleService, repository)

	app := fiber.New()
	handler.RegisterRoutes(app, stepUpHandler, tokenService, repository)

	// Stand-in for the host application's protected module: everything
	// under /ledger consults the gate before serving.
	ledger := app.Group("/ledger", handler.RequireAuth(tokenService, repository), stepUpHandler.RequireStepUp)
	ledger.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"module": "ledger", "unlocked": true})
	})

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
