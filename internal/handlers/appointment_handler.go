package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salutech-dev/medbook-api/internal/cache"
	"github.com/salutech-dev/medbook-api/internal/httperr"
	"github.com/salutech-dev/medbook-api/internal/httpresp"
	"github.com/salutech-dev/medbook-api/internal/middleware"
	"github.com/salutech-dev/medbook-api/internal/timezone"
	ucappointment "github.com/salutech-dev/medbook-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucappointment.CreateAppointment
	transitionUC *ucappointment.TransitionAppointment
	listUC       *ucappointment.ListAppointments
	cache        *cache.AvailabilityCache
}

func NewAppointmentHandler(
	createUC *ucappointment.CreateAppointment,
	transitionUC *ucappointment.TransitionAppointment,
	listUC *ucappointment.ListAppointments,
	availCache *cache.AvailabilityCache,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		transitionUC: transitionUC,
		listUC:       listUC,
		cache:        availCache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BranchID uint `json:"branch_id"`

	PatientName  string `json:"patient_name" binding:"required"`
	PatientPhone string `json:"patient_phone" binding:"required"`
	PatientEmail string `json:"patient_email"`

	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes"`
}

// ======================================================
// CREATE (PROVIDER-SIDE)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucappointment.CreateAppointmentInput{
			ProviderID:   providerID,
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

	h.cache.InvalidateProviderDate(c.Request.Context(), providerID, req.Date)

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Fecha obligatoria.")
		return
	}

	date, err := timezone.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	out, err := h.listUC.ByDate(c.Request.Context(), providerID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Año y mes son obligatorios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Año inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return
	}

	out, err := h.listUC.ByMonth(c.Request.Context(), providerID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar citas.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, ucappointment.TransitionConfirm)
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	h.transition(c, ucappointment.TransitionReject)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, ucappointment.TransitionCancel)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, ucappointment.TransitionComplete)
}

func (h *AppointmentHandler) transition(c *gin.Context, t ucappointment.Transition) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Cita inválida.")
		return
	}

	ap, err := h.transitionUC.Execute(
		c.Request.Context(),
		providerID,
		uint(id),
		t,
		c.GetString(middleware.ContextRequestID),
	)

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "La cita no admite esta transición.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Error al actualizar la cita.")
		}
		return
	}

	// Terminal transitions free the slot again.
	h.cache.InvalidateProviderDate(
		c.Request.Context(),
		providerID,
		timezone.DateOf(ap.ScheduledFor).Format(timezone.DateLayout),
	)

	c.JSON(200, ap)
}
