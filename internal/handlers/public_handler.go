package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salutech-dev/medbook-api/internal/cache"
	"github.com/salutech-dev/medbook-api/internal/httperr"
	"github.com/salutech-dev/medbook-api/internal/httpresp"
	"github.com/salutech-dev/medbook-api/internal/middleware"
	"github.com/salutech-dev/medbook-api/internal/models"
	"github.com/salutech-dev/medbook-api/internal/timezone"
	ucappointment "github.com/salutech-dev/medbook-api/internal/usecase/appointment"
	ucavailability "github.com/salutech-dev/medbook-api/internal/usecase/availability"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	availability *ucavailability.GetAvailability
	createUC     *ucappointment.CreateAppointment
	cache        *cache.AvailabilityCache
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucavailability.GetAvailability,
	createUC *ucappointment.CreateAppointment,
	availCache *cache.AvailabilityCache,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		createUC:     createUC,
		cache:        availCache,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ProviderID uint `json:"provider_id" binding:"required"`
	BranchID   uint `json:"branch_id"`

	PatientName  string `json:"patient_name" binding:"required"`
	PatientPhone string `json:"patient_phone" binding:"required"`
	PatientEmail string `json:"patient_email"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

////////////////////////////////////////////////////////
// PROVIDERS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProviders(c *gin.Context) {
	specialty := strings.TrimSpace(strings.ToLower(c.Query("specialty")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Model(&models.Provider{}).
		Preload("User").
		Where("active = true")

	if specialty != "" {
		q = q.Where("LOWER(specialty) = ?", specialty)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Joins("JOIN users ON users.id = providers.user_id").
			Where("LOWER(users.name) LIKE ? OR LOWER(specialty) LIKE ?", like, like)
	}

	var providers []models.Provider
	if err := q.Order("providers.id ASC").Find(&providers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_providers", "Error al listar proveedores.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	providerIDStr := c.Query("provider_id")
	dateStr := c.Query("date")

	if providerIDStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "Proveedor y fecha son obligatorios.")
		return
	}

	providerID, err := strconv.ParseUint(providerIDStr, 10, 64)
	if err != nil || providerID == 0 {
		httperr.BadRequest(c, "invalid_provider_id", "Proveedor inválido.")
		return
	}

	var branchID uint64
	if s := c.Query("branch_id"); s != "" {
		branchID, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_branch_id", "Sucursal inválida.")
			return
		}
	}

	date, err := timezone.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	ctx := c.Request.Context()

	if slots, hit := h.cache.Get(ctx, uint(providerID), uint(branchID), dateStr); hit {
		c.JSON(http.StatusOK, gin.H{
			"date":            dateStr,
			"available_slots": slots,
		})
		return
	}

	result, err := h.availability.Execute(ctx, ucavailability.Input{
		ProviderID: uint(providerID),
		BranchID:   uint(branchID),
		Date:       date,
	})
	if err != nil {
		httperr.Internal(c, "availability_failed", "Error al calcular horarios.")
		return
	}

	h.cache.Set(ctx, uint(providerID), uint(branchID), dateStr, result.AvailableSlots)

	c.JSON(http.StatusOK, gin.H{
		"date":            result.Date,
		"available_slots": result.AvailableSlots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (PUBLIC BOOKING)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucappointment.CreateAppointmentInput{
			ProviderID:   req.ProviderID,
			BranchID:     req.BranchID,
			PatientName:  req.PatientName,
			PatientPhone: req.PatientPhone,
			PatientEmail: req.PatientEmail,
			Date:         req.Date,
			Time:         req.Time,
			Notes:        req.Notes,
			RequestID:    c.GetString(middleware.ContextRequestID),
		},
	)

	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	h.cache.InvalidateProviderDate(c.Request.Context(), req.ProviderID, req.Date)

	httpresp.Created(c, ap)
}

func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "provider_not_found"):
		httperr.BadRequest(c, "provider_not_found", "Proveedor no encontrado.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Fecha u hora inválida.")
	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.BadRequest(c, "slot_unavailable", "El horario ya no está disponible.")
	case httperr.IsBusiness(err, "slot_taken"):
		httperr.Conflict(c, "slot_taken", "Conflicto de horario.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Error al crear la cita.")
	}
}
