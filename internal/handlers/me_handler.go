package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda/internal/httperr"
	"github.com/BruksfildServices01/agenda/internal/httpresp"
	"github.com/BruksfildServices01/agenda/internal/middleware"
	"github.com/BruksfildServices01/agenda/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the staff user behind the bearer token.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.ActorID(c)
	if userID == nil {
		httperr.Unauthorized(c, "user_not_in_context", "No autenticado.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, *userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "El usuario ya no existe.")
			return
		}
		httperr.FromError(c, err, "internal_error")
		return
	}

	httpresp.OK(c, gin.H{"user": user})
}
