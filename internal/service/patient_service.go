package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pm-platform/patient-service/internal/domain/audit"
	"github.com/pm-platform/patient-service/internal/domain/patient"
	"github.com/pm-platform/patient-service/internal/dto"
	"github.com/pm-platform/patient-service/internal/mapper"
	"github.com/pm-platform/patient-service/internal/validation"
	"github.com/pm-platform/patient-service/pkg/metrics"
)

// PatientService orchestrates the patient record lifecycle: validation,
// the email-uniqueness invariant, wire/entity mapping, and persistence
// through the repository. It holds no state of its own between calls.
type PatientService struct {
	repo     patient.Repository
	auditSvc *AuditService
	log      *zap.Logger
	metrics  *metrics.Collector
	tracer   trace.Tracer
}

func NewPatientService(repo patient.Repository, auditSvc *AuditService, log *zap.Logger, m *metrics.Collector) *PatientService {
	return &PatientService{
		repo:     repo,
		auditSvc: auditSvc,
		log:      log,
		metrics:  m,
		tracer:   otel.Tracer("patient-service"),
	}
}

// List returns every patient in store order.
func (s *PatientService) List(ctx context.Context) ([]*dto.PatientResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.List")
	defer span.End()

	patients, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list patients", zap.Error(err))
		return nil, fmt.Errorf("listing patients: %w", err)
	}

	return mapper.ToResponses(patients), nil
}

// ListPage returns one page of patients with pagination metadata.
func (s *PatientService) ListPage(ctx context.Context, q *patient.ListQuery) (*dto.PagedPatientsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.ListPage")
	defer span.End()

	q.Clamp()

	paged, err := s.repo.ListPage(ctx, q)
	if err != nil {
		s.log.Error("failed to list patients", zap.Error(err), zap.Int("page", q.Page))
		return nil, fmt.Errorf("listing patients: %w", err)
	}

	return mapper.ToPagedResponse(paged), nil
}

// Get returns a single patient or patient.ErrPatientNotFound.
func (s *PatientService) Get(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.Get",
		trace.WithAttributes(attribute.String("patient.id", id.String())))
	defer span.End()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return mapper.ToResponse(p), nil
}

// Search applies at most one filter, in fixed precedence: name, then email,
// then address. The first non-blank filter wins and matches as a
// case-insensitive substring. With no filter it behaves like List.
func (s *PatientService) Search(ctx context.Context, name, email, address string) ([]*dto.PatientResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.Search")
	defer span.End()

	var (
		patients []*patient.Patient
		err      error
	)

	switch {
	case strings.TrimSpace(name) != "":
		patients, err = s.repo.FindByNameContaining(ctx, strings.TrimSpace(name))
	case strings.TrimSpace(email) != "":
		patients, err = s.repo.FindByEmailContaining(ctx, strings.TrimSpace(email))
	case strings.TrimSpace(address) != "":
		patients, err = s.repo.FindByAddressContaining(ctx, strings.TrimSpace(address))
	default:
		patients, err = s.repo.List(ctx)
	}
	if err != nil {
		s.log.Error("failed to search patients", zap.Error(err))
		return nil, fmt.Errorf("searching patients: %w", err)
	}

	return mapper.ToResponses(patients), nil
}

// Create validates the input, enforces the uniqueness invariant, and
// persists a new patient. The store assigns the identifier.
func (s *PatientService) Create(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.Create")
	defer span.End()

	if v := validation.CheckPatientRequest(req, validation.ContextCreate); len(v) > 0 {
		return nil, &ValidationError{Violations: v}
	}

	email := mapper.NormalizeEmail(req.Email)
	exists, err := s.repo.ExistsByEmail(ctx, email, nil)
	if err != nil {
		s.log.Error("failed to check email uniqueness", zap.Error(err))
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		s.log.Warn("attempt to create patient with existing email", zap.String("email", email))
		return nil, patient.ErrEmailAlreadyExists
	}

	p := mapper.ToEntity(req)
	if err := s.repo.Create(ctx, p); err != nil {
		// The store's unique constraint is the authoritative guard: a
		// concurrent create that slipped past the check above comes back
		// as ErrEmailAlreadyExists here.
		if errors.Is(err, patient.ErrEmailAlreadyExists) {
			return nil, err
		}
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	s.metrics.PatientsCreatedTotal.Inc()
	s.auditSvc.LogAsync(ctx, audit.ActionCreate, p.ID.String())
	s.log.Info("patient created", zap.String("patient_id", p.ID.String()))

	return mapper.ToResponse(p), nil
}

// Update applies name, address, email, and date of birth from the input onto
// an existing record. The identifier and registered date are never touched.
func (s *PatientService) Update(ctx context.Context, id uuid.UUID, req *dto.PatientRequest) (*dto.PatientResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PatientService.Update",
		trace.WithAttributes(attribute.String("patient.id", id.String())))
	defer span.End()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := validation.CheckPatientRequest(req, validation.ContextUpdate); len(v) > 0 {
		return nil, &ValidationError{Violations: v}
	}

	email := mapper.NormalizeEmail(req.Email)
	exists, err := s.repo.ExistsByEmail(ctx, email, &id)
	if err != nil {
		s.log.Error("failed to check email uniqueness", zap.Error(err))
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		s.log.Warn("attempt to update patient to existing email", zap.String("email", email))
		return nil, patient.ErrEmailAlreadyExists
	}

	mapper.ApplyUpdate(p, req)
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, patient.ErrEmailAlreadyExists) {
			return nil, err
		}
		s.log.Error("failed to update patient", zap.Error(err))
		return nil, fmt.Errorf("updating patient: %w", err)
	}

	s.metrics.PatientsUpdatedTotal.Inc()
	s.auditSvc.LogAsync(ctx, audit.ActionUpdate, id.String())
	s.log.Info("patient updated", zap.String("patient_id", id.String()))

	return mapper.ToResponse(p), nil
}

// Delete removes a patient permanently, or fails with ErrPatientNotFound.
func (s *PatientService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "PatientService.Delete",
		trace.WithAttributes(attribute.String("patient.id", id.String())))
	defer span.End()

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		s.log.Error("failed to check patient existence", zap.Error(err))
		return fmt.Errorf("checking patient existence: %w", err)
	}
	if !exists {
		s.log.Warn("attempt to delete non-existent patient", zap.String("patient_id", id.String()))
		return patient.ErrPatientNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete patient", zap.Error(err))
		return fmt.Errorf("deleting patient: %w", err)
	}

	s.metrics.PatientsDeletedTotal.Inc()
	s.auditSvc.LogAsync(ctx, audit.ActionDelete, id.String())
	s.log.Info("patient deleted", zap.String("patient_id", id.String()))

	return nil
}
