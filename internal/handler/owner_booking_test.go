package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/queue"
	"github.com/Abdulazizdev09/wedding-hall-booking/internal/repository"
)

type stubOwnerBookings struct {
	listed    []repository.OwnerBookingView
	cancelErr error

	gotOwnerID  uint64
	gotCancelID uint64
}

func (s *stubOwnerBookings) ListByOwner(_ context.Context, ownerID uint64) ([]repository.OwnerBookingView, error) {
	s.gotOwnerID = ownerID
	return s.listed, nil
}

func (s *stubOwnerBookings) CancelByOwner(_ context.Context, bookingID, ownerID uint64) error {
	s.gotCancelID, s.gotOwnerID = bookingID, ownerID
	return s.cancelErr
}

func TestOwnerGetBookings(t *testing.T) {
	booker := "Aziza"
	store := &stubOwnerBookings{listed: []repository.OwnerBookingView{
		{BookingID: 4, EventDate: "2026-07-19", HallName: "Orzu", BookerName: &booker},
	}}
	h := NewOwnerBookingHandler(store, nil, zerolog.Nop())

	c, rec := newTestContext(http.MethodGet, "/hall-owner/get-bookings", "")
	c.Set("user_id", float64(5))

	require.NoError(t, h.GetBookings(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(5), store.gotOwnerID)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), "Aziza")
}

func TestOwnerCancelBookingMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"success", nil, http.StatusOK},
		// A booking on someone else's hall reads as not found.
		{"foreign or missing", repository.ErrBookingNotFound, http.StatusNotFound},
		{"already canceled", model.ErrAlreadyCanceled, http.StatusConflict},
		{"already happened", model.ErrEventOccurred, http.StatusConflict},
		{"past date", model.ErrPastEvent, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubOwnerBookings{cancelErr: tc.err}
			pub := &recordingPublisher{}
			h := NewOwnerBookingHandler(store, pub, zerolog.Nop())

			c, rec := newTestContext(http.MethodDelete, "/hall-owner/cancel-booking/44", "")
			c.SetParamNames("booking_id")
			c.SetParamValues("44")
			c.Set("user_id", float64(5))

			require.NoError(t, h.CancelBooking(c))
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, uint64(44), store.gotCancelID)
			assert.Equal(t, uint64(5), store.gotOwnerID)

			if tc.err == nil {
				require.Len(t, pub.events, 1)
				assert.Equal(t, queue.ActionBookingCanceled, pub.events[0].Action)
			} else {
				assert.Empty(t, pub.events)
			}
		})
	}
}
