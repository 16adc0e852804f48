package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	Reference    string    `json:"reference"`
	ScheduledFor time.Time `json:"scheduled_for"`
	DurationMin  int       `json:"duration_min"`
	Status       string    `json:"status"`
	PatientName  string    `json:"patient_name"`
}
