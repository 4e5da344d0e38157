// file: internals/features/casebank/categories/model/category_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CategoryModel: pohon kategori untuk mengelompokkan cases.
// ParentID nil = kategori root.
type CategoryModel struct {
	CategoryID       uuid.UUID  `gorm:"column:category_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"category_id"`
	CategoryParentID *uuid.UUID `gorm:"column:category_parent_id;type:uuid;index" json:"category_parent_id,omitempty"`

	CategoryName        string `gorm:"column:category_name;type:varchar(255);not null" json:"category_name"`
	CategorySlug        string `gorm:"column:category_slug;type:varchar(255);unique;not null" json:"category_slug"`
	CategoryDescription string `gorm:"column:category_description;type:text" json:"category_description"`
	CategoryPosition    int    `gorm:"column:category_position;not null;default:0" json:"category_position"`

	CategoryCreatedAt time.Time `gorm:"column:category_created_at;not null;autoCreateTime" json:"category_created_at"`
	CategoryUpdatedAt time.Time `gorm:"column:category_updated_at;not null;autoUpdateTime" json:"category_updated_at"`
}

func (CategoryModel) TableName() string {
	return "categories"
}
