package models

import (
	"time"

	"gorm.io/gorm"
)

type Photo struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:varchar(255)"`

	// FolderID is nil for unfiled photos.
	FolderID *uint `gorm:"index"`

	// ImagePath is the sole handle to the blob-store object; the row and
	// the object are deleted as one unit.
	ImagePath   string `gorm:"not null"`
	UploadedAt  time.Time
	SizeInBytes int64 `gorm:"not null"`
	Width       int
	Height      int
}
