package patient

import "errors"

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrEmailAlreadyExists = errors.New("a patient with this email already exists")
)
