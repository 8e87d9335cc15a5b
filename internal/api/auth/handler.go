package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portfolio-admin/internal/api/apiutil"
	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// Handler serves local dashboard accounts. Accounts of the hosted provider sign in there.
type Handler struct {
	db     *gorm.DB
	tokens *auth.HMACVerifier
	ttl    time.Duration
}

func NewHandler(db *gorm.DB, tokens *auth.HMACVerifier, ttl time.Duration) *Handler {
	return &Handler{db: db, tokens: tokens, ttl: ttl}
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apiutil.BindError(c, err)
		return
	}

	var user users.User
	err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).
		First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			apiutil.Error(c, apperr.FromDB(err, "user"))
			return
		}
		apiutil.Error(c, apperr.New(apperr.KindUnauthorized, "Invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		apiutil.Error(c, apperr.New(apperr.KindUnauthorized, "Invalid credentials"))
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email, user.Role, h.ttl)
	if err != nil {
		apiutil.Error(c, apperr.Wrap(err, apperr.KindUnknown, "Could not create token"))
		return
	}

	log.Info().Uint("user_id", user.ID).Msg("login")
	c.JSON(http.StatusOK, gin.H{"token": token, "role": user.Role})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	id, err := auth.Require(c.Request.Context())
	if err != nil {
		apiutil.Error(c, err)
		return
	}
	userID, err := strconv.ParseUint(id.Subject, 10, 64)
	if err != nil {
		apiutil.Error(c, apperr.New(apperr.KindValidation, "This account's password is managed by the sign-in provider"))
		return
	}

	var body struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiutil.BindError(c, err)
		return
	}

	if !isPasswordStrong(body.NewPassword) {
		apiutil.Error(c, &apperr.Error{
			Kind:    apperr.KindValidation,
			Message: "New password must be at least 8 characters with letters and numbers",
			Field:   "newPassword",
		})
		return
	}

	var user users.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		apiutil.Error(c, apperr.FromDB(err, "user"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.OldPassword)); err != nil {
		apiutil.Error(c, apperr.New(apperr.KindUnauthorized, "Old password is incorrect"))
		return
	}

	hashedNew, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		apiutil.Error(c, apperr.Wrap(err, apperr.KindUpdateFailed, "Failed to hash password"))
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Model(&user).Update("password", string(hashedNew)).Error; err != nil {
		apiutil.Error(c, apperr.Wrap(apperr.FromDB(err, "user"), apperr.KindUpdateFailed, "Failed to change password"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
