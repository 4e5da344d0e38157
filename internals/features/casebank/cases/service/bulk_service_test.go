package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	reviewModel "praktikum_backend/internals/features/casebank/reviews/model"
)

func TestPublishPrecondition(t *testing.T) {
	assert.Equal(t, "", PublishPrecondition(caseModel.StatusDraft, 3))
	assert.Equal(t, "", PublishPrecondition(caseModel.StatusApproved, 1))

	assert.Equal(t, ReasonAlreadyPublished, PublishPrecondition(caseModel.StatusPublished, 3))
	assert.Equal(t, ReasonNoQuestions, PublishPrecondition(caseModel.StatusDraft, 0))
	// already_published menang atas no_questions
	assert.Equal(t, ReasonAlreadyPublished, PublishPrecondition(caseModel.StatusPublished, 0))
	// pending_review/in_review tidak boleh langsung publish
	assert.Equal(t, ReasonInvalidTransition, PublishPrecondition(caseModel.StatusPendingReview, 3))
	assert.Equal(t, ReasonInvalidTransition, PublishPrecondition(caseModel.StatusInReview, 3))
	// archived → published diizinkan tabel (republish)
	assert.Equal(t, "", PublishPrecondition(caseModel.StatusArchived, 2))
}

func TestArchivePrecondition(t *testing.T) {
	assert.Equal(t, "", ArchivePrecondition(caseModel.StatusPublished))

	assert.Equal(t, ReasonAlreadyArchived, ArchivePrecondition(caseModel.StatusArchived))
	assert.Equal(t, ReasonInvalidTransition, ArchivePrecondition(caseModel.StatusDraft))
	assert.Equal(t, ReasonInvalidTransition, ArchivePrecondition(caseModel.StatusPendingReview))
	assert.Equal(t, ReasonInvalidTransition, ArchivePrecondition(caseModel.StatusInReview))
	assert.Equal(t, ReasonInvalidTransition, ArchivePrecondition(caseModel.StatusApproved))
}

func TestBulkResultSuccessDerived(t *testing.T) {
	var r BulkResult[uuid.UUID]
	assert.True(t, r.Success(), "batch kosong = sukses")

	r.ok(uuid.New())
	r.ok(uuid.New())
	assert.True(t, r.Success())
	assert.Len(t, r.Succeeded, 2)

	r.fail(uuid.New(), ReasonNotFound)
	assert.False(t, r.Success(), "satu item gagal = batch tidak full sukses")
	assert.Len(t, r.Succeeded, 2, "item sukses tetap tercatat")
	assert.Equal(t, ReasonNotFound, r.Failed[0].Reason)
}

func TestDecisionStatus(t *testing.T) {
	assert.Equal(t, caseModel.StatusApproved, decisionStatus(reviewModel.ReviewApproved))
	assert.Equal(t, caseModel.StatusDraft, decisionStatus(reviewModel.ReviewRejected))
	assert.Equal(t, caseModel.StatusDraft, decisionStatus(reviewModel.ReviewRevisionRequested))
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, 404, HTTPStatus(errNotFound("case")))
	assert.Equal(t, 409, HTTPStatus(errInvalidTransition(caseModel.StatusDraft, caseModel.StatusArchived)))
	assert.Equal(t, 422, HTTPStatus(errValidation("kosong")))
	assert.Equal(t, 403, HTTPStatus(errForbidden("bukan reviewer")))
	// waktu habis ≠ input salah: expired dipetakan terpisah dari 422
	assert.Equal(t, 410, HTTPStatus(&OpError{Kind: FailExpired, Reason: "waktu habis"}))
	assert.Equal(t, 500, HTTPStatus(assert.AnError))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, FailInvalidTransition, KindOf(errInvalidTransition(caseModel.StatusDraft, caseModel.StatusApproved)))
	assert.Equal(t, FailKind(""), KindOf(assert.AnError))
}
