package database

import (
	"errors"
	"strings"

	"portfolio-admin/config"
	"portfolio-admin/internal/domain/blog"
	"portfolio-admin/internal/domain/media"
	"portfolio-admin/internal/domain/pages"
	"portfolio-admin/internal/domain/performances"
	"portfolio-admin/internal/domain/users"
	"portfolio-admin/internal/domain/works"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB() {
	if config.DB_URL == "" {
		log.Fatal().Msg("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate failed")
	}
	if err := SeedAdmin(DB, config.ADMIN_EMAIL, config.ADMIN_PASSWORD); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}

	log.Info().Msg("connected and migrated")
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},

		&works.Artwork{},
		&performances.Performance{},
		&pages.Page{},
		&blog.Post{},

		&media.Media{},
	)
}

// SeedAdmin creates the first admin account when email and password are configured and no
// user with that email exists yet.
func SeedAdmin(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var existing users.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := users.User{Email: email, Password: string(hashed), Role: users.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("seeded admin user")
	return nil
}
