package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ait-dev/patientcare/internal/domain/patient"
	"github.com/ait-dev/patientcare/internal/service"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// respondServiceError is the single policy point translating domain
// error kinds into HTTP responses. Validation failures render as a raw
// field-to-message map; everything unrecognized becomes a sanitized 500.
func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, validErr.Fields)
		return
	}

	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Patient not found"})

	case errors.Is(err, patient.ErrDuplicateInsurance):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insurance number must be unique"})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be an integer"})
		return 0, false
	}
	return id, true
}

// Query helpers treat an absent or empty parameter as "no constraint"
// and reject anything unparseable as a malformed request.

func parseGenderQuery(c *gin.Context, key string) (*patient.Gender, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	g := patient.Gender(raw)
	if !g.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + key + ": must be one of MALE, FEMALE, OTHER"})
		return nil, false
	}
	return &g, true
}

func parseBloodTypeQuery(c *gin.Context, key string) (*patient.BloodType, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	b := patient.BloodType(raw)
	if !b.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + key})
		return nil, false
	}
	return &b, true
}

func parseIntQuery(c *gin.Context, key string) (*int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + key + ": must be an integer"})
		return nil, false
	}
	return &v, true
}
