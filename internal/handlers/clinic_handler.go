package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salutech-dev/medbook-api/internal/httperr"
	"github.com/salutech-dev/medbook-api/internal/httpresp"
	"github.com/salutech-dev/medbook-api/internal/middleware"
	"github.com/salutech-dev/medbook-api/internal/models"
)

type ClinicHandler struct {
	db *gorm.DB
}

func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{db: db}
}

type UpdateClinicRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type AddDoctorRequest struct {
	ProviderID uint `json:"provider_id" binding:"required"`
}

func (h *ClinicHandler) GetMeClinic(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clínica no encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Error al consultar la clínica.")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

func (h *ClinicHandler) UpdateMeClinic(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		httperr.NotFound(c, "clinic_not_found", "Clínica no encontrada.")
		return
	}

	var req UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}

	if err := h.db.Save(&clinic).Error; err != nil {
		httperr.Internal(c, "failed_to_update_clinic", "Error al guardar la clínica.")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

// ======================================================
// AFFILIATIONS (CLINIC ROSTER)
// ======================================================

func (h *ClinicHandler) ListDoctors(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var affs []models.ClinicAffiliation
	if err := h.db.
		Where("clinic_id = ? AND active = true", clinicID).
		Find(&affs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Error al listar médicos.")
		return
	}

	httpresp.List(c, affs)
}

// AddDoctor affiliates a provider with the clinic. While the affiliation is
// active the clinic template governs the provider's availability.
func (h *ClinicHandler) AddDoctor(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req AddDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var provider models.Provider
	if err := h.db.First(&provider, req.ProviderID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Proveedor no encontrado.")
		return
	}

	var count int64
	h.db.Model(&models.ClinicAffiliation{}).
		Where("provider_id = ? AND active = true", req.ProviderID).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "already_affiliated", "El proveedor ya tiene una afiliación activa.")
		return
	}

	aff := models.ClinicAffiliation{
		ProviderID: provider.ID,
		ClinicID:   clinicID,
		DoctorID:   provider.ID,
		Active:     true,
	}

	if err := h.db.Create(&aff).Error; err != nil {
		httperr.Internal(c, "failed_to_create_affiliation", "Error al crear la afiliación.")
		return
	}

	httpresp.Created(c, aff)
}

func (h *ClinicHandler) RemoveDoctor(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Afiliación inválida.")
		return
	}

	var aff models.ClinicAffiliation
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&aff).Error; err != nil {
		httperr.NotFound(c, "affiliation_not_found", "Afiliación no encontrada.")
		return
	}

	aff.Active = false
	if err := h.db.Save(&aff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_affiliation", "Error al actualizar la afiliación.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
