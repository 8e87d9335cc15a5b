package main

import (
	"context"
	"time"

	"portfolio-admin/config"
	"portfolio-admin/database"
	routes "portfolio-admin/internal/app/http"
	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/infra/storage"
	"portfolio-admin/internal/logging"
	"portfolio-admin/internal/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	logging.Init(config.LOG_LEVEL, config.LOG_PRETTY)
	database.InitDB()

	tokens := auth.NewHMACVerifier(config.JWT_SECRET)
	verifiers := auth.Chain{tokens}
	if config.AUTH_ISSUER_URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		oidc, err := auth.NewOIDCVerifier(ctx, config.AUTH_ISSUER_URL, config.AUTH_CLIENT_ID)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("issuer", config.AUTH_ISSUER_URL).Msg("OIDC discovery failed")
		}
		verifiers = append(verifiers, oidc)
	}

	files, err := storage.NewS3(storage.Config{
		Endpoint:        config.S3_ENDPOINT,
		Region:          config.S3_REGION,
		Bucket:          config.S3_BUCKET,
		AccessKeyID:     config.S3_ACCESS_KEY_ID,
		SecretAccessKey: config.S3_SECRET_ACCESS_KEY,
		PublicBaseURL:   config.S3_PUBLIC_BASE_URL,
		Timeout:         config.S3_TIMEOUT,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object storage init failed")
	}

	r := gin.New()
	r.Use(logging.RequestLogger(), metrics.Middleware(), gin.Recovery())

	// Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		DB:             database.DB,
		Files:          files,
		Verifier:       verifiers,
		Tokens:         tokens,
		TokenTTL:       config.JWT_TTL,
		MaxUploadBytes: config.UPLOAD_MAX_BYTES,
	})

	log.Info().Str("port", config.PORT).Msg("listening")
	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
