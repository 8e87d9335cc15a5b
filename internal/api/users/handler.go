package users

import (
	"net/http"
	"strconv"

	"portfolio-admin/internal/api/apiutil"
	"portfolio-admin/internal/auth"
	"portfolio-admin/internal/domain/access"
	"portfolio-admin/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// GetCurrentUser describes the signed-in caller.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	id, err := auth.Require(c.Request.Context())
	if err != nil {
		apiutil.Error(c, err)
		return
	}

	resp := MeResponse{Subject: id.Subject, Email: id.Email, Role: id.Role}
	if userID, err := strconv.ParseUint(id.Subject, 10, 64); err == nil {
		var user users.User
		if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err == nil {
			resp.Local = true
			resp.Email = user.Email
			resp.Role = user.Role
			resp.CreatedAt = &user.CreatedAt
		}
	}
	resp.Capabilities = access.CapabilitiesFor(resp.Role)
	c.JSON(http.StatusOK, resp)
}
