package service

import (
	"strings"

	"github.com/ait-dev/patientcare/internal/domain/patient"
)

// Validation messages are part of the API contract and must not drift.
const (
	msgFirstNameMandatory = "First name is mandatory"
	msgLastNameMandatory  = "Last name is mandatory"
	msgDOBMandatory       = "Date of birth is mandatory"
	msgDOBPast            = "Date of birth must be in the past"
	msgGenderMandatory    = "Gender is mandatory"
	msgInsuranceMandatory = "Insurance number is mandatory"
	msgBloodTypeMandatory = "Blood type is mandatory"
)

// validateWriteCommand checks every constraint and never stops at the
// first failure. An empty map means the command is acceptable.
func validateWriteCommand(cmd *WritePatientCommand, today patient.Date) map[string]string {
	violations := make(map[string]string)

	if strings.TrimSpace(cmd.FirstName) == "" {
		violations["firstName"] = msgFirstNameMandatory
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		violations["lastName"] = msgLastNameMandatory
	}
	switch {
	case cmd.DateOfBirth.IsZero():
		violations["dateOfBirth"] = msgDOBMandatory
	case !cmd.DateOfBirth.Before(today.Time):
		violations["dateOfBirth"] = msgDOBPast
	}
	if cmd.Gender == "" {
		violations["gender"] = msgGenderMandatory
	}
	if strings.TrimSpace(cmd.InsuranceNumber) == "" {
		violations["insuranceNumber"] = msgInsuranceMandatory
	}
	if cmd.BloodType == "" {
		violations["bloodType"] = msgBloodTypeMandatory
	}

	return violations
}
