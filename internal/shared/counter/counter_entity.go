package counter

import "time"

type Counter struct {
	CounterType string `gorm:"primaryKey;type:varchar(64)"`
	LastValue   int64  `gorm:"type:bigint;not null;default:0"`
	UpdatedAt   time.Time
}
