// Package postgres implements the domain repositories on top of gorm and
// PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pm-platform/patient-service/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

var _ patient.Repository = (*PatientRepository)(nil)

func (r *PatientRepository) List(ctx context.Context) ([]*patient.Patient, error) {
	var patients []*patient.Patient
	if err := r.db.WithContext(ctx).Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("querying patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) ListPage(ctx context.Context, q *patient.ListQuery) (*patient.PagedPatients, error) {
	q.Clamp()

	var total int64
	if err := r.db.WithContext(ctx).Model(&patient.Patient{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting patients: %w", err)
	}

	var patients []*patient.Patient
	err := r.db.WithContext(ctx).
		Offset(q.Offset()).
		Limit(q.PageSize).
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("querying patients page: %w", err)
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &patient.PagedPatients{
		Patients:   patients,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, patient.ErrPatientNotFound
		}
		return nil, fmt.Errorf("querying patient %s: %w", id, err)
	}
	return &p, nil
}

func (r *PatientRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&patient.Patient{}).Where("email = ?", email)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}
	return count > 0, nil
}

func (r *PatientRepository) FindByNameContaining(ctx context.Context, name string) ([]*patient.Patient, error) {
	return r.findContaining(ctx, "name", name)
}

func (r *PatientRepository) FindByEmailContaining(ctx context.Context, email string) ([]*patient.Patient, error) {
	return r.findContaining(ctx, "email", email)
}

func (r *PatientRepository) FindByAddressContaining(ctx context.Context, address string) ([]*patient.Patient, error) {
	return r.findContaining(ctx, "address", address)
}

func (r *PatientRepository) findContaining(ctx context.Context, column, value string) ([]*patient.Patient, error) {
	var patients []*patient.Patient
	err := r.db.WithContext(ctx).
		Where(column+` ILIKE ? ESCAPE '\'`, "%"+escapeLikePattern(value)+"%").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("searching patients by %s: %w", column, err)
	}
	return patients, nil
}

// escapeLikePattern neutralizes LIKE metacharacters so the filter text
// matches literally. Without it a search for "100%" matches every record.
func escapeLikePattern(value string) string {
	return likeEscaper.Replace(value)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return patient.ErrEmailAlreadyExists
		}
		return fmt.Errorf("inserting patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) Update(ctx context.Context, p *patient.Patient) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return patient.ErrEmailAlreadyExists
		}
		return fmt.Errorf("updating patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&patient.Patient{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&patient.Patient{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking patient existence: %w", err)
	}
	return count > 0, nil
}
