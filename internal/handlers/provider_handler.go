package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salutech-dev/medbook-api/internal/httperr"
	"github.com/salutech-dev/medbook-api/internal/httpresp"
	"github.com/salutech-dev/medbook-api/internal/middleware"
	"github.com/salutech-dev/medbook-api/internal/models"
)

type ProviderHandler struct {
	db *gorm.DB
}

func NewProviderHandler(db *gorm.DB) *ProviderHandler {
	return &ProviderHandler{db: db}
}

type UpdateProviderRequest struct {
	Specialty *string `json:"specialty"`
	Bio       *string `json:"bio"`
	Active    *bool   `json:"active"`
}

type CreateBranchRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address"`
	IsDefault bool   `json:"is_default"`
}

func (h *ProviderHandler) GetMeProvider(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var provider models.Provider
	if err := h.db.Preload("User").First(&provider, providerID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Proveedor no encontrado.")
		return
	}

	c.JSON(http.StatusOK, provider)
}

func (h *ProviderHandler) UpdateMeProvider(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var provider models.Provider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Proveedor no encontrado.")
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Specialty != nil {
		provider.Specialty = *req.Specialty
	}
	if req.Bio != nil {
		provider.Bio = *req.Bio
	}
	if req.Active != nil {
		provider.Active = *req.Active
	}

	if err := h.db.Save(&provider).Error; err != nil {
		httperr.Internal(c, "failed_to_update_provider", "Error al guardar el perfil.")
		return
	}

	c.JSON(http.StatusOK, provider)
}

// ======================================================
// BRANCHES
// ======================================================

func (h *ProviderHandler) ListBranches(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var branches []models.ProviderBranch
	if err := h.db.
		Where("provider_id = ?", providerID).
		Order("is_default DESC, id ASC").
		Find(&branches).Error; err != nil {
		httperr.Internal(c, "failed_to_list_branches", "Error al listar sucursales.")
		return
	}

	httpresp.List(c, branches)
}

func (h *ProviderHandler) CreateBranch(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	branch := models.ProviderBranch{
		ProviderID: providerID,
		Name:       req.Name,
		Address:    req.Address,
		IsDefault:  req.IsDefault,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&models.ProviderBranch{}).
				Where("provider_id = ?", providerID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&branch).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_create_branch", "Error al crear la sucursal.")
		return
	}

	httpresp.Created(c, branch)
}
