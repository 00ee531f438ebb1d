// Package validation holds the structural checks applied to incoming patient
// data before anything touches the store.
package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/pm-platform/patient-service/internal/dto"
)

// Context tells the validator which operation the input is for. The
// registered date is required at creation only; updates never carry it.
type Context int

const (
	ContextCreate Context = iota
	ContextUpdate
)

const maxNameLength = 100

var validate = validator.New()

// Violations maps field name to the reason the field was rejected. Empty
// means the input is accepted.
type Violations map[string]string

// CheckPatientRequest runs every rule and reports all violations at once,
// not just the first.
func CheckPatientRequest(req *dto.PatientRequest, vctx Context) Violations {
	v := Violations{}

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		v["name"] = "name is required"
	case utf8.RuneCountInString(name) > maxNameLength:
		v["name"] = "name cannot exceed 100 characters"
	}

	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		v["email"] = "email is required"
	case validate.Var(email, "email") != nil:
		v["email"] = "email must be a valid email address"
	}

	if strings.TrimSpace(req.Address) == "" {
		v["address"] = "address is required"
	}

	checkDate(v, "date_of_birth", req.DateOfBirth)

	if vctx == ContextCreate {
		checkDate(v, "registered_date", req.RegisteredDate)
	}

	return v
}

func checkDate(v Violations, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		v[field] = field + " is required"
		return
	}
	if _, err := time.Parse(dto.DateLayout, value); err != nil {
		v[field] = field + " must be a valid date in YYYY-MM-DD format"
	}
}
