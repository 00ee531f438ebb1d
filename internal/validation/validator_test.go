package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pm-platform/patient-service/internal/dto"
)

func validRequest() *dto.PatientRequest {
	return &dto.PatientRequest{
		Name:           "Test Patient",
		Email:          "test@example.com",
		Address:        "123 Test St",
		DateOfBirth:    "1990-01-01",
		RegisteredDate: "2024-01-01",
	}
}

func TestCheckPatientRequest_Valid(t *testing.T) {
	v := CheckPatientRequest(validRequest(), ContextCreate)
	assert.Empty(t, v)
}

func TestCheckPatientRequest_CreateRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.PatientRequest)
		field   string
		message string
	}{
		{
			name:   "missing name",
			mutate: func(r *dto.PatientRequest) { r.Name = "" },
			field:  "name",
		},
		{
			name:   "blank name",
			mutate: func(r *dto.PatientRequest) { r.Name = "   " },
			field:  "name",
		},
		{
			name:    "name too long",
			mutate:  func(r *dto.PatientRequest) { r.Name = strings.Repeat("x", 101) },
			field:   "name",
			message: "name cannot exceed 100 characters",
		},
		{
			name:   "missing email",
			mutate: func(r *dto.PatientRequest) { r.Email = "" },
			field:  "email",
		},
		{
			name:    "malformed email",
			mutate:  func(r *dto.PatientRequest) { r.Email = "not-an-email" },
			field:   "email",
			message: "email must be a valid email address",
		},
		{
			name:   "missing address",
			mutate: func(r *dto.PatientRequest) { r.Address = "" },
			field:  "address",
		},
		{
			name:   "missing date of birth",
			mutate: func(r *dto.PatientRequest) { r.DateOfBirth = "" },
			field:  "date_of_birth",
		},
		{
			name:    "malformed date of birth",
			mutate:  func(r *dto.PatientRequest) { r.DateOfBirth = "01/01/1990" },
			field:   "date_of_birth",
			message: "date_of_birth must be a valid date in YYYY-MM-DD format",
		},
		{
			name:   "missing registered date",
			mutate: func(r *dto.PatientRequest) { r.RegisteredDate = "" },
			field:  "registered_date",
		},
		{
			name:   "malformed registered date",
			mutate: func(r *dto.PatientRequest) { r.RegisteredDate = "2024-13-45" },
			field:  "registered_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			v := CheckPatientRequest(req, ContextCreate)

			require.Contains(t, v, tt.field)
			if tt.message != "" {
				assert.Equal(t, tt.message, v[tt.field])
			}
		})
	}
}

func TestCheckPatientRequest_RegisteredDateNotRequiredOnUpdate(t *testing.T) {
	req := validRequest()
	req.RegisteredDate = ""

	assert.Empty(t, CheckPatientRequest(req, ContextUpdate))
	assert.Contains(t, CheckPatientRequest(req, ContextCreate), "registered_date")
}

func TestCheckPatientRequest_NameAtLimitAccepted(t *testing.T) {
	req := validRequest()
	req.Name = strings.Repeat("x", 100)

	assert.Empty(t, CheckPatientRequest(req, ContextCreate))
}

func TestCheckPatientRequest_NameLimitCountsCharactersNotBytes(t *testing.T) {
	req := validRequest()
	req.Name = strings.Repeat("å", 100) // 200 bytes, 100 characters

	assert.Empty(t, CheckPatientRequest(req, ContextCreate))

	req.Name = strings.Repeat("å", 101)
	v := CheckPatientRequest(req, ContextCreate)
	require.Contains(t, v, "name")
	assert.Equal(t, "name cannot exceed 100 characters", v["name"])
}

func TestCheckPatientRequest_ReportsAllViolationsAtOnce(t *testing.T) {
	v := CheckPatientRequest(&dto.PatientRequest{}, ContextCreate)

	assert.Len(t, v, 5)
	for _, field := range []string{"name", "email", "address", "date_of_birth", "registered_date"} {
		assert.Contains(t, v, field)
	}
}
