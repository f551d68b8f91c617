package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func date(s string) time.Time {
	t, err := time.Parse(EventDateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCancelable(t *testing.T) {
	cases := []struct {
		name      string
		status    BookingStatus
		eventDate time.Time
		wantErr   error
	}{
		{"future booking", StatusWillHappen, date("2025-12-31"), nil},
		{"same-day booking", StatusWillHappen, date("2025-06-15"), nil},
		{"already canceled", StatusCanceled, date("2025-12-31"), ErrAlreadyCanceled},
		{"already happened", StatusHappened, date("2025-01-01"), ErrEventOccurred},
		{"past event date", StatusWillHappen, date("2025-06-14"), ErrPastEvent},
		{"canceled wins over past date", StatusCanceled, date("2025-01-01"), ErrAlreadyCanceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Cancelable(tc.status, tc.eventDate, now)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestDisplayStatus(t *testing.T) {
	cases := []struct {
		name      string
		status    BookingStatus
		eventDate time.Time
		want      BookingStatus
	}{
		{"future stays will_happen", StatusWillHappen, date("2025-12-31"), StatusWillHappen},
		{"today stays will_happen", StatusWillHappen, date("2025-06-15"), StatusWillHappen},
		{"past reads as happened", StatusWillHappen, date("2025-06-14"), StatusHappened},
		{"canceled never flips", StatusCanceled, date("2025-01-01"), StatusCanceled},
		{"happened stays happened", StatusHappened, date("2025-01-01"), StatusHappened},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DisplayStatus(tc.status, tc.eventDate, now))
		})
	}
}
