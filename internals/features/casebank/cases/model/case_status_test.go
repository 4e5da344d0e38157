package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Pasangan transisi yang diizinkan — satu-satunya sumber kebenaran di luar
// tabel itu sendiri. Semua pasangan lain harus ditolak.
var allowedPairs = [][2]CaseStatus{
	{StatusDraft, StatusPendingReview},
	{StatusDraft, StatusPublished}, // fast-track tanpa review
	{StatusPendingReview, StatusDraft},
	{StatusPendingReview, StatusInReview},
	{StatusInReview, StatusApproved},
	{StatusInReview, StatusDraft},
	{StatusApproved, StatusPublished},
	{StatusApproved, StatusDraft},
	{StatusPublished, StatusArchived},
	{StatusPublished, StatusDraft},
	{StatusArchived, StatusDraft},
	{StatusArchived, StatusPublished},
}

func TestCanTransitionAllowedPairs(t *testing.T) {
	for _, pair := range allowedPairs {
		assert.Truef(t, CanTransition(pair[0], pair[1]), "%s → %s seharusnya diizinkan", pair[0], pair[1])
	}
}

func TestCanTransitionRejectsEverythingElse(t *testing.T) {
	all := []CaseStatus{StatusDraft, StatusPendingReview, StatusInReview, StatusApproved, StatusPublished, StatusArchived}

	allowed := make(map[[2]CaseStatus]bool, len(allowedPairs))
	for _, p := range allowedPairs {
		allowed[p] = true
	}

	for _, from := range all {
		for _, to := range all {
			if allowed[[2]CaseStatus{from, to}] {
				continue
			}
			assert.Falsef(t, CanTransition(from, to), "%s → %s seharusnya ditolak", from, to)
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("bogus", StatusDraft))
	assert.False(t, CanTransition(StatusDraft, "bogus"))
	// self-transition tidak pernah ada di tabel
	assert.False(t, CanTransition(StatusDraft, StatusDraft))
}

func TestCaseStatusValid(t *testing.T) {
	for _, s := range []CaseStatus{StatusDraft, StatusPendingReview, StatusInReview, StatusApproved, StatusPublished, StatusArchived} {
		assert.True(t, s.Valid())
	}
	assert.False(t, CaseStatus("deleted").Valid())
	assert.False(t, CaseStatus("").Valid())
}
