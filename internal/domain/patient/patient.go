package patient

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name    string `gorm:"column:name;type:varchar(100);not null"`
	Email   string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Address string `gorm:"column:address;type:text;not null"`

	DateOfBirth time.Time `gorm:"column:date_of_birth;type:date;not null"`
	// Set once at registration; update operations never touch it.
	RegisteredDate time.Time `gorm:"column:registered_date;type:date;not null"`
}

func (Patient) TableName() string {
	return "registry.patients"
}

// ListQuery defines pagination for patient list queries. Page is 1-based.
type ListQuery struct {
	Page     int
	PageSize int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Clamp forces Page and PageSize into their valid ranges. Repositories call
// it on entry so an out-of-range query can never divide by zero.
func (q *ListQuery) Clamp() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 || q.PageSize > maxPageSize {
		q.PageSize = defaultPageSize
	}
}

func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type PagedPatients struct {
	Patients   []*Patient
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
