package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
)

// Booking mirrors the 'bookings' table. EventDate is exposed in the
// YYYY-MM-DD wire format used everywhere a date crosses the API boundary.
type Booking struct {
	ID          uint64              `json:"id"`
	EventDate   string              `json:"event_date"`
	BookedDate  time.Time           `json:"booked_date"`
	BookedSeats uint32              `json:"booked_seats"`
	Status      model.BookingStatus `json:"status"`
	ClientID    uint64              `json:"client_id"`
	HallID      uint64              `json:"hall_id"`
}

// BookingRepo provides creation, scoped listing and cancellation of bookings
// while preserving the one-active-booking-per-hall-per-date and capacity
// invariants.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create reserves a hall for a date. The hall lookup, capacity check,
// date-conflict check and insert all run inside one transaction with the
// hall row and any conflicting booking row locked, so two concurrent calls
// for the same (hall, date) cannot both pass the conflict check. Validation
// order: hall exists -> seats <= capacity -> slot free.
// Returns the created booking and the hall snapshot used for validation.
func (r *BookingRepo) Create(ctx context.Context, clientID, hallID uint64, eventDate time.Time, seats uint32) (*Booking, *Hall, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const hallQ = `SELECT id, name, region, capacity, price_per_seat, status, owner_id, phone_number
	               FROM wedding_halls WHERE id = ? FOR UPDATE`
	var h Hall
	var status string
	err = tx.QueryRowContext(ctx, hallQ, hallID).
		Scan(&h.ID, &h.Name, &h.Region, &h.Capacity, &h.PricePerSeat, &status, &h.OwnerID, &h.PhoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrHallNotFound
		}
		return nil, nil, err
	}
	h.Status, _ = model.ParseHallStatus(status)

	if seats > h.Capacity {
		return nil, nil, ErrCapacityExceeded
	}

	// Canceled bookings release their slot, so they are excluded here.
	var conflicting uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM bookings WHERE hall_id = ? AND event_date = ? AND status <> 'canceled' LIMIT 1 FOR UPDATE`,
		hallID, eventDate.Format(model.EventDateLayout)).Scan(&conflicting)
	switch {
	case err == nil:
		return nil, nil, ErrDateConflict
	case !errors.Is(err, sql.ErrNoRows):
		return nil, nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (event_date, booked_seats, status, client_id, hall_id, booked_date)
		 VALUES (?,?,?,?,?,NOW())`,
		eventDate.Format(model.EventDateLayout), seats, string(model.StatusWillHappen), clientID, hallID)
	if err != nil {
		return nil, nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, nil, err
	}

	b := Booking{ID: uint64(id)}
	var evDate, bkDate time.Time
	var bStatus string
	err = tx.QueryRowContext(ctx,
		`SELECT event_date, booked_date, booked_seats, status, client_id, hall_id FROM bookings WHERE id = ?`,
		b.ID).Scan(&evDate, &bkDate, &b.BookedSeats, &bStatus, &b.ClientID, &b.HallID)
	if err != nil {
		return nil, nil, err
	}
	b.EventDate = evDate.Format(model.EventDateLayout)
	b.BookedDate = bkDate
	b.Status = model.BookingStatus(bStatus)

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &b, &h, nil
}

// BookedDates returns the distinct event dates still held by non-canceled
// bookings of a hall, ascending, for calendar display.
func (r *BookingRepo) BookedDates(ctx context.Context, hallID uint64) ([]string, error) {
	const q = `SELECT DISTINCT event_date FROM bookings
	           WHERE hall_id = ? AND status <> 'canceled'
	           ORDER BY event_date`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d.Format(model.EventDateLayout))
	}
	return out, rows.Err()
}

// ClientBookingView is a client's booking denormalized with the hall fields
// shown on the my-bookings page. Hall fields are nullable because a canceled
// booking can outlive its hall.
type ClientBookingView struct {
	Booking
	DisplayStatus model.BookingStatus `json:"display_status"`
	HallName      *string             `json:"hall_name"`
	HallRegion    *string             `json:"hall_region"`
	PricePerSeat  *float64            `json:"hall_price_per_seat"`
	HallCapacity  *uint32             `json:"hall_capacity"`
	HallPhone     *string             `json:"hall_phone"`
}

// ListByClient returns all bookings of one client, most recently booked
// first.
func (r *BookingRepo) ListByClient(ctx context.Context, clientID uint64) ([]ClientBookingView, error) {
	const q = `SELECT b.id, b.event_date, b.booked_date, b.booked_seats, b.status, b.client_id, b.hall_id,
	                  wh.name, wh.region, wh.price_per_seat, wh.capacity, wh.phone_number
	           FROM bookings b
	           LEFT JOIN wedding_halls wh ON wh.id = b.hall_id
	           WHERE b.client_id = ?
	           ORDER BY b.booked_date DESC`
	rows, err := r.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	out := make([]ClientBookingView, 0)
	for rows.Next() {
		var v ClientBookingView
		var evDate time.Time
		var status string
		if err := rows.Scan(&v.ID, &evDate, &v.BookedDate, &v.BookedSeats, &status, &v.ClientID, &v.HallID,
			&v.HallName, &v.HallRegion, &v.PricePerSeat, &v.HallCapacity, &v.HallPhone); err != nil {
			return nil, err
		}
		v.EventDate = evDate.Format(model.EventDateLayout)
		v.Status = model.BookingStatus(status)
		v.DisplayStatus = model.DisplayStatus(v.Status, evDate, now)
		out = append(out, v)
	}
	return out, rows.Err()
}

// OwnerBookingView is a booking on one of the caller's halls, denormalized
// with hall and client identity fields.
type OwnerBookingView struct {
	BookingID     uint64              `json:"booking_id"`
	BookedDate    time.Time           `json:"booked_date"`
	EventDate     string              `json:"event_date"`
	BookedSeats   uint32              `json:"booked_seats"`
	Status        model.BookingStatus `json:"status"`
	DisplayStatus model.BookingStatus `json:"display_status"`
	HallID        uint64              `json:"hall_id"`
	HallName      string              `json:"hall_name"`
	Region        string              `json:"region"`
	HallCapacity  uint32              `json:"hall_capacity"`
	PricePerSeat  float64             `json:"price_per_seat"`
	BookerName    *string             `json:"booker_name"`
	BookerSurname *string             `json:"booker_surname"`
	BookerPhone   *string             `json:"booker_phone_number"`
	BookerUser    *string             `json:"booker_username"`
}

// ListByOwner returns every booking on halls owned by the caller, upcoming
// events first, latest action first within a date.
func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]OwnerBookingView, error) {
	const q = `SELECT b.id, b.booked_date, b.event_date, b.booked_seats, b.status,
	                  wh.id, wh.name, wh.region, wh.capacity, wh.price_per_seat,
	                  c.first_name, c.last_name, c.phone_number, c.username
	           FROM bookings b
	           INNER JOIN wedding_halls wh ON wh.id = b.hall_id
	           LEFT JOIN users c ON c.id = b.client_id AND c.role = 'client'
	           WHERE wh.owner_id = ?
	           ORDER BY b.event_date DESC, b.booked_date DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	out := make([]OwnerBookingView, 0)
	for rows.Next() {
		var v OwnerBookingView
		var evDate time.Time
		var status string
		if err := rows.Scan(&v.BookingID, &v.BookedDate, &evDate, &v.BookedSeats, &status,
			&v.HallID, &v.HallName, &v.Region, &v.HallCapacity, &v.PricePerSeat,
			&v.BookerName, &v.BookerSurname, &v.BookerPhone, &v.BookerUser); err != nil {
			return nil, err
		}
		v.EventDate = evDate.Format(model.EventDateLayout)
		v.Status = model.BookingStatus(status)
		v.DisplayStatus = model.DisplayStatus(v.Status, evDate, now)
		out = append(out, v)
	}
	return out, rows.Err()
}

// AdminBookingView extends the owner view with the hall owner's identity.
type AdminBookingView struct {
	OwnerBookingView
	OwnerName    *string `json:"owner_name"`
	OwnerSurname *string `json:"owner_surname"`
	OwnerPhone   *string `json:"owner_phone_number"`
}

// ListAll returns every booking system-wide for the admin view, same
// ordering as the owner view.
func (r *BookingRepo) ListAll(ctx context.Context) ([]AdminBookingView, error) {
	const q = `SELECT b.id, b.booked_date, b.event_date, b.booked_seats, b.status,
	                  wh.id, wh.name, wh.region, wh.capacity, wh.price_per_seat,
	                  c.first_name, c.last_name, c.phone_number, c.username,
	                  o.first_name, o.last_name, o.phone_number
	           FROM bookings b
	           LEFT JOIN wedding_halls wh ON wh.id = b.hall_id
	           LEFT JOIN users c ON c.id = b.client_id AND c.role = 'client'
	           LEFT JOIN users o ON o.id = wh.owner_id AND o.role = 'hall_owner'
	           ORDER BY b.event_date DESC, b.booked_date DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	out := make([]AdminBookingView, 0)
	for rows.Next() {
		var v AdminBookingView
		var evDate time.Time
		var status string
		var hallID sql.NullInt64
		var hallName, region sql.NullString
		var capacity sql.NullInt64
		var price sql.NullFloat64
		if err := rows.Scan(&v.BookingID, &v.BookedDate, &evDate, &v.BookedSeats, &status,
			&hallID, &hallName, &region, &capacity, &price,
			&v.BookerName, &v.BookerSurname, &v.BookerPhone, &v.BookerUser,
			&v.OwnerName, &v.OwnerSurname, &v.OwnerPhone); err != nil {
			return nil, err
		}
		if hallID.Valid {
			v.HallID = uint64(hallID.Int64)
			v.HallName = hallName.String
			v.Region = region.String
			v.HallCapacity = uint32(capacity.Int64)
			v.PricePerSeat = price.Float64
		}
		v.EventDate = evDate.Format(model.EventDateLayout)
		v.Status = model.BookingStatus(status)
		v.DisplayStatus = model.DisplayStatus(v.Status, evDate, now)
		out = append(out, v)
	}
	return out, rows.Err()
}

// CancelByClient cancels a booking owned by the calling client. A booking
// belonging to someone else yields ErrForbidden. The state rules of
// model.Cancelable apply; the transition is a soft cancel, freeing the
// (hall, date) slot for future bookings.
func (r *BookingRepo) CancelByClient(ctx context.Context, bookingID, clientID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var owner uint64
	var evDate time.Time
	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT client_id, event_date, status FROM bookings WHERE id = ? FOR UPDATE", bookingID).
		Scan(&owner, &evDate, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if owner != clientID {
		return ErrForbidden
	}
	if err := model.Cancelable(model.BookingStatus(status), evDate, time.Now().UTC()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status = 'canceled' WHERE id = ?", bookingID); err != nil {
		return err
	}
	return tx.Commit()
}

// CancelByOwner cancels a booking on one of the caller's halls. Missing
// bookings and bookings on foreign halls both return ErrBookingNotFound so
// the endpoint does not reveal whether the booking exists.
func (r *BookingRepo) CancelByOwner(ctx context.Context, bookingID, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var hallOwner sql.NullInt64
	var evDate time.Time
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT wh.owner_id, b.event_date, b.status
		 FROM bookings b
		 INNER JOIN wedding_halls wh ON wh.id = b.hall_id
		 WHERE b.id = ? FOR UPDATE`, bookingID).
		Scan(&hallOwner, &evDate, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if !hallOwner.Valid || uint64(hallOwner.Int64) != ownerID {
		return ErrBookingNotFound
	}
	if err := model.Cancelable(model.BookingStatus(status), evDate, time.Now().UTC()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status = 'canceled' WHERE id = ?", bookingID); err != nil {
		return err
	}
	return tx.Commit()
}

// CancelByAdmin cancels any booking by id with no ownership or date
// precondition. It is still a soft cancel: the row survives for the audit
// trail and the slot frees up because the conflict check skips canceled rows.
// Re-canceling stays an error to keep the one-way transition observable.
func (r *BookingRepo) CancelByAdmin(ctx context.Context, bookingID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM bookings WHERE id = ? FOR UPDATE", bookingID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if model.BookingStatus(status) == model.StatusCanceled {
		return model.ErrAlreadyCanceled
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status = 'canceled' WHERE id = ?", bookingID); err != nil {
		return err
	}
	return tx.Commit()
}
