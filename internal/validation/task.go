package validation

import (
	"errors"
	"fmt"
	"time"
)

// Batasan field task. Aturan ini dipakai oleh handler HTTP dan juga
// repository supaya kedua lapisan tidak bisa berbeda.
const (
	NameMinLen        = 3
	NameMaxLen        = 50
	DescriptionMinLen = 5
	DescriptionMaxLen = 200
)

const (
	StatusPending   = "pending"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

var (
	ErrName        = fmt.Errorf("task name must be between %d and %d characters", NameMinLen, NameMaxLen)
	ErrDescription = fmt.Errorf("description must be between %d and %d characters", DescriptionMinLen, DescriptionMaxLen)
	ErrStatus      = errors.New("status must be 'pending', 'ongoing', or 'completed'")
	ErrDueDatePast = errors.New("due date must be in the future")
)

// ValidStatus is a function to validate the status of a task
// it will return true if the status is one of the following:
// - pending
// - ongoing
// - completed
// and false otherwise
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusOngoing, StatusCompleted:
		return true
	default:
		return false
	}
}

// ValidateDueDate menolak due date yang tidak berada di masa depan.
func ValidateDueDate(due time.Time) error {
	if !due.After(time.Now()) {
		return ErrDueDatePast
	}
	return nil
}

// ValidateTask memeriksa semua field task sekaligus dan mengembalikan
// error pertama yang ditemukan.
func ValidateTask(name, description, status string, due time.Time) error {
	if len(name) < NameMinLen || len(name) > NameMaxLen {
		return ErrName
	}
	if len(description) < DescriptionMinLen || len(description) > DescriptionMaxLen {
		return ErrDescription
	}
	if !ValidStatus(status) {
		return ErrStatus
	}
	return ValidateDueDate(due)
}

// IsValidationError melaporkan apakah err berasal dari salah satu aturan
// di package ini, supaya handler bisa memetakan ke status 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrName) ||
		errors.Is(err, ErrDescription) ||
		errors.Is(err, ErrStatus) ||
		errors.Is(err, ErrDueDatePast)
}
