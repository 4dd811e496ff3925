package patient

import "errors"

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrDuplicateInsurance = errors.New("insurance number must be unique")
)
