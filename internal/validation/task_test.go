package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus("pending"))
	assert.True(t, ValidStatus("ongoing"))
	assert.True(t, ValidStatus("completed"))
	assert.False(t, ValidStatus("in_progress"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Pending"))
}

func TestValidateDueDate(t *testing.T) {
	assert.NoError(t, ValidateDueDate(time.Now().Add(time.Hour)))
	assert.ErrorIs(t, ValidateDueDate(time.Now().Add(-time.Hour)), ErrDueDatePast)
	// Tepat "sekarang" juga ditolak, harus strictly di masa depan
	assert.ErrorIs(t, ValidateDueDate(time.Now().Add(-time.Millisecond)), ErrDueDatePast)
}

func TestValidateTask(t *testing.T) {
	tomorrow := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name        string
		taskName    string
		description string
		status      string
		due         time.Time
		wantErr     error
	}{
		{"valid", "Write report", "Draft Q3 report", "pending", tomorrow, nil},
		{"name too short", "ab", "Draft Q3 report", "pending", tomorrow, ErrName},
		{"name too long", strings.Repeat("a", 51), "Draft Q3 report", "pending", tomorrow, ErrName},
		{"name at bounds", strings.Repeat("a", 50), "Draft Q3 report", "pending", tomorrow, nil},
		{"description too short", "Write report", "abcd", "pending", tomorrow, ErrDescription},
		{"description too long", "Write report", strings.Repeat("a", 201), "pending", tomorrow, ErrDescription},
		{"bad status", "Write report", "Draft Q3 report", "done", tomorrow, ErrStatus},
		{"past due date", "Write report", "Draft Q3 report", "pending", time.Now().Add(-time.Hour), ErrDueDatePast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTask(tt.taskName, tt.description, tt.status, tt.due)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrName))
	assert.True(t, IsValidationError(ErrDueDatePast))
	assert.False(t, IsValidationError(assert.AnError))
	assert.False(t, IsValidationError(nil))
}
