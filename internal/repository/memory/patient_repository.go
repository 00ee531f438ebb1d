// Package memory holds map-backed repositories. They enforce the same
// contracts as the postgres implementations, including the unique-email
// rejection, and back the test suites and local development.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pm-platform/patient-service/internal/domain/patient"
)

type PatientRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*patient.Patient
	ordered []uuid.UUID
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{
		byID: make(map[uuid.UUID]*patient.Patient),
	}
}

var _ patient.Repository = (*PatientRepository)(nil)

func (r *PatientRepository) List(_ context.Context) ([]*patient.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

func (r *PatientRepository) ListPage(_ context.Context, q *patient.ListQuery) (*patient.PagedPatients, error) {
	q.Clamp()

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.snapshot()
	total := int64(len(all))

	start := q.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + q.PageSize
	if end > len(all) {
		end = len(all)
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &patient.PagedPatients{
		Patients:   all[start:end],
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (r *PatientRepository) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *PatientRepository) ExistsByEmail(_ context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emailTaken(email, excludeID), nil
}

func (r *PatientRepository) FindByNameContaining(_ context.Context, name string) ([]*patient.Patient, error) {
	return r.findContaining(func(p *patient.Patient) string { return p.Name }, name), nil
}

func (r *PatientRepository) FindByEmailContaining(_ context.Context, email string) ([]*patient.Patient, error) {
	return r.findContaining(func(p *patient.Patient) string { return p.Email }, email), nil
}

func (r *PatientRepository) FindByAddressContaining(_ context.Context, address string) ([]*patient.Patient, error) {
	return r.findContaining(func(p *patient.Patient) string { return p.Address }, address), nil
}

func (r *PatientRepository) Create(_ context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The check and the write share one lock, mirroring the unique
	// constraint a real store enforces.
	if r.emailTaken(p.Email, nil) {
		return patient.ErrEmailAlreadyExists
	}

	p.ID = uuid.New()
	cp := *p
	r.byID[p.ID] = &cp
	r.ordered = append(r.ordered, p.ID)
	return nil
}

func (r *PatientRepository) Update(_ context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; !ok {
		return patient.ErrPatientNotFound
	}
	if r.emailTaken(p.Email, &p.ID) {
		return patient.ErrEmailAlreadyExists
	}

	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *PatientRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return patient.ErrPatientNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.ordered {
		if oid == id {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
	return nil
}

func (r *PatientRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok, nil
}

func (r *PatientRepository) snapshot() []*patient.Patient {
	out := make([]*patient.Patient, 0, len(r.ordered))
	for _, id := range r.ordered {
		cp := *r.byID[id]
		out = append(out, &cp)
	}
	return out
}

func (r *PatientRepository) emailTaken(email string, excludeID *uuid.UUID) bool {
	for id, p := range r.byID {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if p.Email == email {
			return true
		}
	}
	return false
}

func (r *PatientRepository) findContaining(field func(*patient.Patient) string, value string) []*patient.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(value)
	var out []*patient.Patient
	for _, id := range r.ordered {
		p := r.byID[id]
		if strings.Contains(strings.ToLower(field(p)), needle) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}
