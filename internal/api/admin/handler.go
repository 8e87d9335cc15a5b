package admin

import (
	"net/http"
	"strings"
	"time"

	"portfolio-admin/internal/api/apiutil"
	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminUser struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Handler manages local dashboard accounts. Admin only.
type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) ListUsers(c *gin.Context) {
	var list []users.User
	if err := h.db.WithContext(c.Request.Context()).Order("email ASC").Find(&list).Error; err != nil {
		apiutil.Error(c, apperr.FromDB(err, "user"))
		return
	}

	out := make([]AdminUser, 0, len(list))
	for _, u := range list {
		out = append(out, AdminUser{ID: u.ID, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"omitempty,oneof=admin editor"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apiutil.BindError(c, err)
		return
	}
	if input.Role == "" {
		input.Role = users.RoleEditor
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		apiutil.Error(c, apperr.Wrap(err, apperr.KindCreateFailed, "Failed to hash password"))
		return
	}
	user := users.User{
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hashed),
		Role:     input.Role,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		apiutil.Error(c, apperr.Wrap(apperr.FromDB(err, "user"), apperr.KindCreateFailed, "Failed to create user"))
		return
	}

	c.JSON(http.StatusCreated, AdminUser{ID: user.ID, Email: user.Email, Role: user.Role, CreatedAt: user.CreatedAt})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).Delete(&users.User{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		apiutil.Error(c, apperr.FromDB(res.Error, "user"))
		return
	}
	if res.RowsAffected == 0 {
		apiutil.Error(c, apperr.NotFound("User"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
