package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salutech-dev/medbook-api/internal/cache"
	"github.com/salutech-dev/medbook-api/internal/httperr"
	"github.com/salutech-dev/medbook-api/internal/httpresp"
	"github.com/salutech-dev/medbook-api/internal/middleware"
	"github.com/salutech-dev/medbook-api/internal/models"
	"github.com/salutech-dev/medbook-api/internal/timezone"
)

// ScheduleHandler manages the weekly templates. A template belongs either to
// an independent provider branch or to a clinic; updates are full replaces
// of the 7-day configuration, which keeps the one-entry-per-day invariant
// true by construction.
type ScheduleHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
}

func NewScheduleHandler(db *gorm.DB, availCache *cache.AvailabilityCache) *ScheduleHandler {
	return &ScheduleHandler{db: db, cache: availCache}
}

type ScheduleDayConfig struct {
	DayOfWeek  int    `json:"day_of_week" binding:"min=0,max=6"`
	Enabled    bool   `json:"enabled"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDayConfig `json:"days" binding:"required"`
}

// --------------------------------------------------
// Branch template (independent providers)
// --------------------------------------------------

func (h *ScheduleHandler) GetBranchSchedule(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	branch, ok := h.ownedBranch(c, providerID)
	if !ok {
		return
	}

	h.getSchedule(c, models.ScheduleOwnerBranch, branch.ID)
}

func (h *ScheduleHandler) UpdateBranchSchedule(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	branch, ok := h.ownedBranch(c, providerID)
	if !ok {
		return
	}

	h.updateSchedule(c, models.ScheduleOwnerBranch, branch.ID, []uint{providerID})
}

func (h *ScheduleHandler) ownedBranch(c *gin.Context, providerID uint) (*models.ProviderBranch, bool) {
	q := h.db.Where("provider_id = ?", providerID)

	if idStr := c.Query("branch_id"); idStr != "" {
		q = q.Where("id = ?", idStr)
	} else {
		q = q.Order("is_default DESC, id ASC")
	}

	var branch models.ProviderBranch
	if err := q.First(&branch).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Sucursal no encontrada.")
		return nil, false
	}
	return &branch, true
}

// --------------------------------------------------
// Clinic template (shared by affiliated doctors)
// --------------------------------------------------

func (h *ScheduleHandler) GetClinicSchedule(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	h.getSchedule(c, models.ScheduleOwnerClinic, clinicID)
}

func (h *ScheduleHandler) UpdateClinicSchedule(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	// A clinic template governs every affiliated doctor's availability.
	var providerIDs []uint
	if err := h.db.
		Model(&models.ClinicAffiliation{}).
		Where("clinic_id = ? AND active = true", clinicID).
		Pluck("provider_id", &providerIDs).Error; err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Error al guardar el horario.")
		return
	}

	h.updateSchedule(c, models.ScheduleOwnerClinic, clinicID, providerIDs)
}

// --------------------------------------------------
// Shared plumbing
// --------------------------------------------------

func (h *ScheduleHandler) getSchedule(c *gin.Context, ownerType string, ownerID uint) {
	var entries []models.WeeklySchedule
	if err := h.db.
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("day_of_week ASC").
		Find(&entries).Error; err != nil {

		httperr.Internal(c, "failed_to_get_schedule", "Error al consultar el horario.")
		return
	}

	httpresp.List(c, entries)
}

func (h *ScheduleHandler) updateSchedule(
	c *gin.Context,
	ownerType string,
	ownerID uint,
	providerIDs []uint,
) {
	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	seen := make(map[int]bool, len(req.Days))
	for _, d := range req.Days {
		if seen[d.DayOfWeek] {
			httperr.BadRequest(c, "duplicate_day", "Día repetido en la configuración.")
			return
		}
		seen[d.DayOfWeek] = true

		if d.Enabled {
			if msg, ok := validateDay(d); !ok {
				httperr.BadRequest(c, "invalid_schedule_day", msg)
				return
			}
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
			Delete(&models.WeeklySchedule{}).Error; err != nil {
			return err
		}

		var toCreate []models.WeeklySchedule
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WeeklySchedule{
				OwnerType:  ownerType,
				OwnerID:    ownerID,
				DayOfWeek:  d.DayOfWeek,
				Enabled:    d.Enabled,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
				BreakStart: d.BreakStart,
				BreakEnd:   d.BreakEnd,
			})
		}

		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})

	if err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Error al guardar el horario.")
		return
	}

	// Cached availability computed from the old template is stale for
	// every date, not just one.
	for _, pid := range providerIDs {
		h.cache.InvalidateProvider(c.Request.Context(), pid)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validateDay(d ScheduleDayConfig) (string, bool) {
	start, err1 := time.Parse(timezone.ClockLayout, d.StartTime)
	end, err2 := time.Parse(timezone.ClockLayout, d.EndTime)
	if err1 != nil || err2 != nil || !start.Before(end) {
		return "Hora de inicio y fin inválidas.", false
	}

	hasBreakStart := d.BreakStart != ""
	hasBreakEnd := d.BreakEnd != ""
	if hasBreakStart != hasBreakEnd {
		return "El descanso requiere inicio y fin.", false
	}

	if hasBreakStart {
		bs, err1 := time.Parse(timezone.ClockLayout, d.BreakStart)
		be, err2 := time.Parse(timezone.ClockLayout, d.BreakEnd)
		if err1 != nil || err2 != nil || !bs.Before(be) || bs.Before(start) || be.After(end) {
			return "El descanso debe quedar dentro del horario.", false
		}
	}

	return "", true
}
