package jobrole

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRole struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Title       string         `gorm:"size:255;not null;uniqueIndex:uq_jobrole_title"`
	Description string         `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
