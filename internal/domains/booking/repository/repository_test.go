package repository_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/booking/repository"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

func TestMapConflict(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		err          error
		wantConflict bool
	}{
		{
			name: "nil error passes through",
			err:  nil,
		},
		{
			name:         "exclusion violation from the overlap constraint",
			err:          &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeExclusionViolation)},
			wantConflict: true,
		},
		{
			name:         "unique violation",
			err:          &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)},
			wantConflict: true,
		},
		{
			name:         "wrapped exclusion violation",
			err:          fmt.Errorf("insert booking: %w", &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeExclusionViolation)}),
			wantConflict: true,
		},
		{
			name: "foreign key violation passes through",
			err:  &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeFkViolation)},
		},
		{
			name: "plain error passes through",
			err:  errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := repository.MapConflict(tt.err, "room-1", checkIn, checkOut)

			if tt.err == nil {
				assert.NoError(t, result)

				return
			}

			if tt.wantConflict {
				assert.Equal(t, failure.KindConflict, failure.GetKind(result))
				assert.Contains(t, result.Error(), "room-1")

				return
			}

			assert.Equal(t, tt.err, result)
		})
	}
}
