package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/middleware"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor.UserID == 0 {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, actor.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	out := gin.H{"user": userView(&user)}

	if user.Role == models.RoleExpert {
		var expert models.Expert
		if err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", user.ID).First(&expert).Error; err == nil {
			out["expert"] = expert
		}
	}

	c.JSON(http.StatusOK, out)
}
