package models

import "gorm.io/gorm"

// Tag labels are deduplicated per owner: inserting an existing
// (user_id, label) pair reuses the existing row.
type Tag struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex:idx_user_label;not null"`
	Label  string `gorm:"uniqueIndex:idx_user_label;type:varchar(100);not null"`
}

// PhotoTagRelation is a pure association row with no lifecycle of its own;
// it is only written as a side effect of tag assignment and deletes.
type PhotoTagRelation struct {
	PhotoID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID   uint `gorm:"primaryKey;autoIncrement:false"`
}

func (PhotoTagRelation) TableName() string {
	return "photo_tag_relations"
}
