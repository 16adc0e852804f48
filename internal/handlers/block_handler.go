package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salutech-dev/medbook-api/internal/audit"
	"github.com/salutech-dev/medbook-api/internal/cache"
	"github.com/salutech-dev/medbook-api/internal/httperr"
	"github.com/salutech-dev/medbook-api/internal/httpresp"
	"github.com/salutech-dev/medbook-api/internal/middleware"
	"github.com/salutech-dev/medbook-api/internal/models"
	"github.com/salutech-dev/medbook-api/internal/timezone"
)

// BlockHandler covers both kinds of ad hoc unavailability: blocked ranges
// owned directly by independent-provider branches, and date-block requests
// that affiliated doctors submit for clinic approval.
type BlockHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewBlockHandler(db *gorm.DB, auditor *audit.Dispatcher, availCache *cache.AvailabilityCache) *BlockHandler {
	return &BlockHandler{
		db:    db,
		audit: auditor,
		cache: availCache,
	}
}

// ======================================================
// BLOCKED RANGES (INDEPENDENT PROVIDERS)
// ======================================================

type CreateBlockedRangeRequest struct {
	BranchID  uint   `json:"branch_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *BlockHandler) ListBlockedRanges(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Fecha obligatoria.")
		return
	}

	var blocks []models.BlockedRange
	if err := h.db.
		Joins("JOIN provider_branches ON provider_branches.id = blocked_ranges.branch_id").
		Where("provider_branches.provider_id = ? AND blocked_ranges.date = ?", providerID, dateStr).
		Order("blocked_ranges.start_time ASC").
		Find(&blocks).Error; err != nil {

		httperr.Internal(c, "failed_to_list_blocks", "Error al listar bloqueos.")
		return
	}

	httpresp.List(c, blocks)
}

func (h *BlockHandler) CreateBlockedRange(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req CreateBlockedRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if !validClockRange(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_time_range", "Rango horario inválido.")
		return
	}
	if _, err := timezone.ParseDate(req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	var branch models.ProviderBranch
	if err := h.db.
		Where("id = ? AND provider_id = ?", req.BranchID, providerID).
		First(&branch).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Sucursal no encontrada.")
		return
	}

	block := models.BlockedRange{
		BranchID:  branch.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Error al crear el bloqueo.")
		return
	}

	h.cache.InvalidateProviderDate(c.Request.Context(), providerID, req.Date)

	h.audit.Dispatch(audit.Event{
		ActorID:   &providerID,
		Action:    "blocked_range_created",
		Entity:    "blocked_range",
		EntityID:  &block.ID,
		RequestID: c.GetString(middleware.ContextRequestID),
	})

	httpresp.Created(c, block)
}

func (h *BlockHandler) DeleteBlockedRange(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Bloqueo inválido.")
		return
	}

	var block models.BlockedRange
	if err := h.db.
		Joins("JOIN provider_branches ON provider_branches.id = blocked_ranges.branch_id").
		Where("blocked_ranges.id = ? AND provider_branches.provider_id = ?", id, providerID).
		First(&block).Error; err != nil {
		httperr.NotFound(c, "block_not_found", "Bloqueo no encontrado.")
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_block", "Error al eliminar el bloqueo.")
		return
	}

	h.cache.InvalidateProviderDate(c.Request.Context(), providerID, block.Date)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ======================================================
// DATE BLOCK REQUESTS (CLINIC DOCTORS)
// ======================================================

type CreateDateBlockRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// CreateDateBlock is submitted by an affiliated doctor; it only affects
// availability once the clinic approves it.
func (h *BlockHandler) CreateDateBlock(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req CreateDateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if _, err := timezone.ParseDate(req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	// Either a full-day block (no times) or a well-formed partial range.
	partial := req.StartTime != "" || req.EndTime != ""
	if partial && !validClockRange(req.StartTime, req.EndTime) {
		httperr.BadRequest(c, "invalid_time_range", "Rango horario inválido.")
		return
	}

	var aff models.ClinicAffiliation
	if err := h.db.
		Where("provider_id = ? AND active = true", providerID).
		First(&aff).Error; err != nil {
		httperr.BadRequest(c, "no_active_affiliation", "No tienes una afiliación activa.")
		return
	}

	block := models.DateBlockRequest{
		DoctorID:  aff.DoctorID,
		ClinicID:  aff.ClinicID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		Status:    models.DateBlockPending,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_request", "Error al crear la solicitud.")
		return
	}

	httpresp.Created(c, block)
}

func (h *BlockHandler) ListMyDateBlocks(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var aff models.ClinicAffiliation
	if err := h.db.
		Where("provider_id = ? AND active = true", providerID).
		First(&aff).Error; err != nil {
		httpresp.List(c, []models.DateBlockRequest{})
		return
	}

	var reqs []models.DateBlockRequest
	if err := h.db.
		Where("clinic_id = ? AND doctor_id = ?", aff.ClinicID, aff.DoctorID).
		Order("date DESC, id DESC").
		Find(&reqs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_requests", "Error al listar solicitudes.")
		return
	}

	httpresp.List(c, reqs)
}

// ======================================================
// DATE BLOCK REVIEW (CLINIC SIDE)
// ======================================================

func (h *BlockHandler) ListClinicDateBlocks(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	q := h.db.Where("clinic_id = ?", clinicID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var reqs []models.DateBlockRequest
	if err := q.Order("date DESC, id DESC").Find(&reqs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_requests", "Error al listar solicitudes.")
		return
	}

	httpresp.List(c, reqs)
}

func (h *BlockHandler) ApproveDateBlock(c *gin.Context) {
	h.resolveDateBlock(c, models.DateBlockApproved)
}

func (h *BlockHandler) RejectDateBlock(c *gin.Context) {
	h.resolveDateBlock(c, models.DateBlockRejected)
}

func (h *BlockHandler) resolveDateBlock(c *gin.Context, status string) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Solicitud inválida.")
		return
	}

	var block models.DateBlockRequest
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&block).Error; err != nil {
		httperr.NotFound(c, "request_not_found", "Solicitud no encontrada.")
		return
	}

	if block.Status != models.DateBlockPending {
		httperr.BadRequest(c, "invalid_state", "La solicitud ya fue resuelta.")
		return
	}

	now := timezone.Now()
	block.Status = status
	block.ResolvedAt = &now

	if err := h.db.Save(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_update_request", "Error al actualizar la solicitud.")
		return
	}

	if status == models.DateBlockApproved {
		// The doctor's slots for that date just changed.
		var aff models.ClinicAffiliation
		if err := h.db.
			Where("clinic_id = ? AND doctor_id = ? AND active = true", block.ClinicID, block.DoctorID).
			First(&aff).Error; err == nil {
			h.cache.InvalidateProviderDate(c.Request.Context(), aff.ProviderID, block.Date)
		}
	}

	h.audit.Dispatch(audit.Event{
		ActorID:   &userID,
		Action:    "date_block_" + status,
		Entity:    "date_block_request",
		EntityID:  &block.ID,
		RequestID: c.GetString(middleware.ContextRequestID),
	})

	c.JSON(http.StatusOK, block)
}

func validClockRange(startHM, endHM string) bool {
	start, err1 := time.Parse(timezone.ClockLayout, startHM)
	end, err2 := time.Parse(timezone.ClockLayout, endHM)
	return err1 == nil && err2 == nil && start.Before(end)
}
