// models/reorder_alert_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReorderAlertLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID    uuid.UUID `gorm:"type:uuid;index;not null"`
	VariantID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Message      string    `gorm:"type:text"`
	Status       string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string    `gorm:"type:text"`
	Channel      string    `gorm:"type:varchar(20)"` // sms
	SentAt       time.Time
	gorm.Model
}

func (r *ReorderAlertLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
