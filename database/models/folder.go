package models

import "gorm.io/gorm"

// Folder rows form a forest per owner: the parent chain always terminates
// at a root (ParentID = nil) and never crosses user boundaries.
type Folder struct {
	gorm.Model
	UserID      uint   `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:varchar(255)"`
	ParentID    *uint  `gorm:"index"`
}
