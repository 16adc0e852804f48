package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salutech-dev/medbook-api/internal/middleware"
	"github.com/salutech-dev/medbook-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.Preload("Clinic").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
	}

	if user.Clinic != nil {
		resp["clinic"] = gin.H{
			"id":      user.Clinic.ID,
			"name":    user.Clinic.Name,
			"slug":    user.Clinic.Slug,
			"phone":   user.Clinic.Phone,
			"address": user.Clinic.Address,
		}
	}

	if user.Role == models.RoleProvider {
		var provider models.Provider
		if err := h.db.Where("user_id = ?", user.ID).First(&provider).Error; err == nil {
			resp["provider"] = gin.H{
				"id":        provider.ID,
				"specialty": provider.Specialty,
				"active":    provider.Active,
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
