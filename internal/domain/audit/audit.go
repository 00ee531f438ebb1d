package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry records one mutation of the patient registry.
type Entry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	Action       Action `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string `gorm:"column:resource_type;type:varchar(50);not null"`
	ResourceID   string `gorm:"column:resource_id;type:varchar(50);index"`
	RequestID    string `gorm:"column:request_id;type:varchar(50);index"`
}

func (Entry) TableName() string {
	return "audit.entries"
}

type Repository interface {
	Create(ctx context.Context, e *Entry) error
}
