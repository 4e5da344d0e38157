// file: internals/features/casebank/cases/model/case_status.go
package model

// CaseStatus adalah siklus publikasi sebuah case. Disimpan sebagai
// varchar, tapi di kode selalu lewat konstanta ini — bukan string bebas.
type CaseStatus string

const (
	StatusDraft         CaseStatus = "draft"
	StatusPendingReview CaseStatus = "pending_review"
	StatusInReview      CaseStatus = "in_review"
	StatusApproved      CaseStatus = "approved"
	StatusPublished     CaseStatus = "published"
	StatusArchived      CaseStatus = "archived"
)

func (s CaseStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingReview, StatusInReview,
		StatusApproved, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// transitions: daftar status tujuan yang legal per status asal.
// draft → published adalah jalur fast-track publish tanpa review.
var transitions = map[CaseStatus][]CaseStatus{
	StatusDraft:         {StatusPendingReview, StatusPublished},
	StatusPendingReview: {StatusDraft, StatusInReview},
	StatusInReview:      {StatusApproved, StatusDraft},
	StatusApproved:      {StatusPublished, StatusDraft},
	StatusPublished:     {StatusArchived, StatusDraft},
	StatusArchived:      {StatusDraft, StatusPublished},
}

// CanTransition adalah membership test murni terhadap tabel transisi.
// Setiap operasi pengubah status wajib memanggil ini dulu.
func CanTransition(from, to CaseStatus) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
