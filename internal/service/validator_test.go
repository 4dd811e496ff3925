package service

import (
	"testing"
	"time"

	"github.com/ait-dev/patientcare/internal/domain/patient"
	"github.com/stretchr/testify/assert"
)

var testToday = patient.NewDate(2026, time.February, 1)

func validCommand() *WritePatientCommand {
	return &WritePatientCommand{
		FirstName:       "Anna",
		LastName:        "Smith",
		DateOfBirth:     patient.NewDate(1985, time.May, 10),
		Gender:          patient.GenderFemale,
		InsuranceNumber: "999999",
		BloodType:       patient.BloodTypeOPos,
	}
}

func TestValidateWriteCommand(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WritePatientCommand)
		want   map[string]string
	}{
		{
			name:   "valid command passes",
			mutate: func(*WritePatientCommand) {},
			want:   map[string]string{},
		},
		{
			name:   "blank first name",
			mutate: func(c *WritePatientCommand) { c.FirstName = "" },
			want:   map[string]string{"firstName": "First name is mandatory"},
		},
		{
			name:   "whitespace-only first name",
			mutate: func(c *WritePatientCommand) { c.FirstName = "   " },
			want:   map[string]string{"firstName": "First name is mandatory"},
		},
		{
			name:   "blank last name",
			mutate: func(c *WritePatientCommand) { c.LastName = "\t" },
			want:   map[string]string{"lastName": "Last name is mandatory"},
		},
		{
			name:   "missing date of birth",
			mutate: func(c *WritePatientCommand) { c.DateOfBirth = patient.Date{} },
			want:   map[string]string{"dateOfBirth": "Date of birth is mandatory"},
		},
		{
			name:   "date of birth today is not in the past",
			mutate: func(c *WritePatientCommand) { c.DateOfBirth = testToday },
			want:   map[string]string{"dateOfBirth": "Date of birth must be in the past"},
		},
		{
			name:   "date of birth in the future",
			mutate: func(c *WritePatientCommand) { c.DateOfBirth = patient.NewDate(2030, time.January, 1) },
			want:   map[string]string{"dateOfBirth": "Date of birth must be in the past"},
		},
		{
			name:   "yesterday is acceptable",
			mutate: func(c *WritePatientCommand) { c.DateOfBirth = patient.NewDate(2026, time.January, 31) },
			want:   map[string]string{},
		},
		{
			name:   "missing gender",
			mutate: func(c *WritePatientCommand) { c.Gender = "" },
			want:   map[string]string{"gender": "Gender is mandatory"},
		},
		{
			name:   "blank insurance number",
			mutate: func(c *WritePatientCommand) { c.InsuranceNumber = "  " },
			want:   map[string]string{"insuranceNumber": "Insurance number is mandatory"},
		},
		{
			name:   "missing blood type",
			mutate: func(c *WritePatientCommand) { c.BloodType = "" },
			want:   map[string]string{"bloodType": "Blood type is mandatory"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand()
			tt.mutate(cmd)
			assert.Equal(t, tt.want, validateWriteCommand(cmd, testToday))
		})
	}
}

// Every violated field must be reported at once, never only the first.
func TestValidateWriteCommandCollectsAllViolations(t *testing.T) {
	got := validateWriteCommand(&WritePatientCommand{}, testToday)

	assert.Equal(t, map[string]string{
		"firstName":       "First name is mandatory",
		"lastName":        "Last name is mandatory",
		"dateOfBirth":     "Date of birth is mandatory",
		"gender":          "Gender is mandatory",
		"insuranceNumber": "Insurance number is mandatory",
		"bloodType":       "Blood type is mandatory",
	}, got)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"lastName":  "Last name is mandatory",
		"firstName": "First name is mandatory",
	}}
	assert.Equal(t,
		"validation failed: firstName: First name is mandatory; lastName: Last name is mandatory",
		err.Error(),
	)
}
