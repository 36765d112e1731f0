// internal/models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification with a nil TargetUserID is a broadcast visible to every user.
type Notification struct {
	BaseModel
	Title        string           `json:"title" gorm:"size:255;not null"`
	Message      string           `json:"message" gorm:"type:text;not null"`
	Type         NotificationType `json:"type" gorm:"type:varchar(20);default:'system'"`
	TargetUserID *uuid.UUID       `json:"target_user_id" gorm:"type:uuid;index"`
	CreatedByID  uuid.UUID        `json:"created_by_id" gorm:"type:uuid;not null"`
	IsRead       bool             `json:"is_read" gorm:"default:false;index"`
	ReadAt       *time.Time       `json:"read_at"`

	CreatedBy *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}
