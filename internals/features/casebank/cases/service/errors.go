// file: internals/features/casebank/cases/service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	caseModel "praktikum_backend/internals/features/casebank/cases/model"
)

// FailKind membedakan jenis kegagalan supaya caller bisa kasih pesan
// yang beda: invalid transition ≠ validasi ≠ not-found ≠ forbidden.
type FailKind string

const (
	FailNotFound          FailKind = "not_found"
	FailInvalidTransition FailKind = "invalid_transition"
	FailValidation        FailKind = "validation"
	FailForbidden         FailKind = "forbidden"
	// FailExpired: waktu attempt/sesi sudah lewat — caller harus mulai
	// ulang, bukan memperbaiki input. Sengaja dibedakan dari validation.
	FailExpired FailKind = "expired"
)

type OpError struct {
	Kind   FailKind
	Reason string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func errNotFound(what string) error {
	return &OpError{Kind: FailNotFound, Reason: what + " tidak ditemukan"}
}

func errInvalidTransition(from, to caseModel.CaseStatus) error {
	return &OpError{
		Kind:   FailInvalidTransition,
		Reason: fmt.Sprintf("transisi status %s → %s tidak diizinkan", from, to),
	}
}

func errValidation(reason string) error {
	return &OpError{Kind: FailValidation, Reason: reason}
}

func errForbidden(reason string) error {
	return &OpError{Kind: FailForbidden, Reason: reason}
}

// HTTPStatus memetakan FailKind ke status HTTP untuk controller.
func HTTPStatus(err error) int {
	var oe *OpError
	if !errors.As(err, &oe) {
		return fiber.StatusInternalServerError
	}
	switch oe.Kind {
	case FailNotFound:
		return fiber.StatusNotFound
	case FailInvalidTransition:
		return fiber.StatusConflict
	case FailValidation:
		return fiber.StatusUnprocessableEntity
	case FailForbidden:
		return fiber.StatusForbidden
	case FailExpired:
		return fiber.StatusGone
	default:
		return fiber.StatusInternalServerError
	}
}

// KindOf ambil FailKind ("" kalau bukan OpError).
func KindOf(err error) FailKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}
