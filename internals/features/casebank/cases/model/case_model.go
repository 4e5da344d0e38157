// file: internals/features/casebank/cases/model/case_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CaseModel: satu soal praktik (statement + kumpulan pertanyaan)
type CaseModel struct {
	CaseID         uuid.UUID `gorm:"column:case_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"case_id"`
	CaseCategoryID uuid.UUID `gorm:"column:case_category_id;type:uuid;not null;index" json:"case_category_id"`

	CaseName            string     `gorm:"column:case_name;type:varchar(255);not null" json:"case_name"`
	CaseStatement       string     `gorm:"column:case_statement;type:text;not null" json:"case_statement"`
	CaseStatementFormat string     `gorm:"column:case_statement_format;type:varchar(16);not null;default:'html'" json:"case_statement_format"`
	CaseStatus          CaseStatus `gorm:"column:case_status;type:varchar(20);not null;default:'draft';index" json:"case_status"`

	CaseDifficulty *int           `gorm:"column:case_difficulty" json:"case_difficulty,omitempty"` // 1..5, nullable
	CaseTags       pq.StringArray `gorm:"column:case_tags;type:text[]" json:"case_tags"`

	CaseCreatedBy uuid.UUID `gorm:"column:case_created_by;type:uuid;not null" json:"case_created_by"`
	CaseCreatedAt time.Time `gorm:"column:case_created_at;not null;autoCreateTime" json:"case_created_at"`
	CaseUpdatedAt time.Time `gorm:"column:case_updated_at;not null;autoUpdateTime" json:"case_updated_at"`
}

// TableName overrides the table name used by GORM.
func (CaseModel) TableName() string {
	return "cases"
}
