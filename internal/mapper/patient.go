// Package mapper converts between the wire representation of a patient and
// the persisted entity. It is pure and assumes its input has already passed
// validation: a date that fails to parse here is a programming error, not a
// user error, and panics.
package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/pm-platform/patient-service/internal/domain/patient"
	"github.com/pm-platform/patient-service/internal/dto"
)

// ToEntity builds a new, unpersisted patient from a create request. The ID is
// left unset; the store assigns it. Fields are normalized: surrounding
// whitespace trimmed, email lowercased.
func ToEntity(req *dto.PatientRequest) *patient.Patient {
	return &patient.Patient{
		Name:           strings.TrimSpace(req.Name),
		Email:          NormalizeEmail(req.Email),
		Address:        strings.TrimSpace(req.Address),
		DateOfBirth:    mustParseDate(req.DateOfBirth),
		RegisteredDate: mustParseDate(req.RegisteredDate),
	}
}

// ApplyUpdate copies the updatable fields of req onto p. The ID and the
// registered date are never touched.
func ApplyUpdate(p *patient.Patient, req *dto.PatientRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Email = NormalizeEmail(req.Email)
	p.Address = strings.TrimSpace(req.Address)
	p.DateOfBirth = mustParseDate(req.DateOfBirth)
}

func ToResponse(p *patient.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Email:       p.Email,
		Address:     p.Address,
		DateOfBirth: p.DateOfBirth.Format(dto.DateLayout),
	}
}

func ToResponses(patients []*patient.Patient) []*dto.PatientResponse {
	out := make([]*dto.PatientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, ToResponse(p))
	}
	return out
}

func ToPagedResponse(paged *patient.PagedPatients) *dto.PagedPatientsResponse {
	return &dto.PagedPatientsResponse{
		Data:          ToResponses(paged.Patients),
		Page:          paged.Page,
		PageSize:      paged.PageSize,
		TotalElements: paged.TotalCount,
		TotalPages:    paged.TotalPages,
	}
}

// NormalizeEmail is the canonical form used for storage and for the
// exact-match uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func mustParseDate(s string) time.Time {
	t, err := time.Parse(dto.DateLayout, strings.TrimSpace(s))
	if err != nil {
		panic(fmt.Sprintf("mapper: unvalidated date %q: %v", s, err))
	}
	return t
}
