package v1

import (
	"net/http"

	"github.com/ait-dev/patientcare/internal/domain/patient"
	"github.com/ait-dev/patientcare/internal/service"
	"github.com/gin-gonic/gin"
)

// patientRequest is the inbound wire shape. id, createdAt, and deleted
// are deliberately absent: clients cannot set them, and unknown fields
// are ignored by the decoder.
type patientRequest struct {
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	DateOfBirth     patient.Date      `json:"dateOfBirth"`
	Gender          patient.Gender    `json:"gender"`
	InsuranceNumber string            `json:"insuranceNumber"`
	BloodType       patient.BloodType `json:"bloodType"`
}

func (r *patientRequest) toCommand() *service.WritePatientCommand {
	return &service.WritePatientCommand{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		DateOfBirth:     r.DateOfBirth,
		Gender:          r.Gender,
		InsuranceNumber: r.InsuranceNumber,
		BloodType:       r.BloodType,
	}
}

type PatientHandler struct {
	svc        *service.PatientService
	clinicName string
}

func NewPatientHandler(svc *service.PatientService, clinicName string) *PatientHandler {
	return &PatientHandler{svc: svc, clinicName: clinicName}
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req patientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req.toCommand())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req patientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, req.toCommand())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.SoftDelete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PatientHandler) Search(c *gin.Context) {
	gender, ok := parseGenderQuery(c, "gender")
	if !ok {
		return
	}
	bloodType, ok := parseBloodTypeQuery(c, "bloodType")
	if !ok {
		return
	}
	ageFrom, ok := parseIntQuery(c, "ageFrom")
	if !ok {
		return
	}
	ageTo, ok := parseIntQuery(c, "ageTo")
	if !ok {
		return
	}

	patients, err := h.svc.Search(c.Request.Context(), service.SearchQuery{
		Gender:    gender,
		BloodType: bloodType,
		AgeFrom:   ageFrom,
		AgeTo:     ageTo,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) Statistics(c *gin.Context) {
	stats, err := h.svc.Statistics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *PatientHandler) Info(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to %s!", h.clinicName)
}
