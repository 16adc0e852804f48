package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salutech-dev/medbook-api/internal/httperr"
	"github.com/salutech-dev/medbook-api/internal/httpresp"
	"github.com/salutech-dev/medbook-api/internal/middleware"
	"github.com/salutech-dev/medbook-api/internal/models"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

// ======================================================
// LIST PATIENTS (PROVIDER)
// ======================================================

// List returns the patients the provider has ever had an appointment with.
func (h *PatientHandler) List(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.
		Model(&models.Patient{}).
		Distinct("patients.*").
		Joins("JOIN appointments ON appointments.patient_id = patients.id").
		Where("appointments.provider_id = ?", providerID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(patients.name) LIKE ? OR patients.phone LIKE ? OR LOWER(patients.email) LIKE ?",
			like, like, like,
		)
	}

	var patients []models.Patient
	if err := q.
		Order("patients.created_at DESC").
		Find(&patients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_patients", "Error al listar pacientes.")
		return
	}

	httpresp.List(c, patients)
}
