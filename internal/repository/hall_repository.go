package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Abdulazizdev09/wedding-hall-booking/internal/model"
)

// Hall mirrors the 'wedding_halls' table. OwnerID is nullable: admin-created
// halls may exist before an owner is assigned.
type Hall struct {
	ID           uint64           `json:"id"`
	Name         string           `json:"name"`
	Region       string           `json:"region"`
	Capacity     uint32           `json:"capacity"`
	PricePerSeat float64          `json:"price_per_seat"`
	Status       model.HallStatus `json:"status"`
	OwnerID      *uint64          `json:"owner_id"`
	PhoneNumber  *string          `json:"phone_number"`
}

// HallUpdate carries a partial edit: nil fields keep their current value, so
// an edit can never null-out columns the caller did not send. Status and
// Owner are honored only on the admin path; OwnerSet distinguishes "assign
// owner NULL" from "leave owner untouched".
type HallUpdate struct {
	Name         *string
	Region       *string
	Capacity     *uint32
	PricePerSeat *float64
	PhoneNumber  *string
	Status       *model.HallStatus
	Owner        *uint64
	OwnerSet     bool
}

// HallListItem is a hall row joined with its main image, as shown in the
// public, owner and admin list views.
type HallListItem struct {
	ID           uint64           `json:"id"`
	Name         string           `json:"name"`
	Region       string           `json:"region"`
	Capacity     uint32           `json:"capacity"`
	PricePerSeat float64          `json:"price_per_seat"`
	Status       model.HallStatus `json:"status"`
	OwnerID      *uint64          `json:"owner_id,omitempty"`
	PhoneNumber  *string          `json:"phone_number"`
	ImagePath    *string          `json:"image_path"`
}

// HallDetail is the single-hall public view: the hall plus owner contact
// fields when an owner is assigned.
type HallDetail struct {
	Hall
	ContactNumber  *string `json:"contact_number"`
	OwnerFirstName *string `json:"first_name"`
	OwnerLastName  *string `json:"last_name"`
}

type HallRepo struct{ db *sql.DB }

func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

// DB exposes the underlying handle for transactions that span repositories.
func (r *HallRepo) DB() *sql.DB { return r.db }

// Create inserts a new hall and populates its generated ID.
func (r *HallRepo) Create(ctx context.Context, h *Hall) error {
	const q = `INSERT INTO wedding_halls (name, region, capacity, price_per_seat, status, owner_id, phone_number)
	           VALUES (?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		h.Name, h.Region, h.Capacity, h.PricePerSeat, string(h.Status), h.OwnerID, h.PhoneNumber)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID retrieves a hall by its ID regardless of owner. Returns
// ErrHallNotFound when no row exists.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*Hall, error) {
	const q = `SELECT id, name, region, capacity, price_per_seat, status, owner_id, phone_number
	           FROM wedding_halls WHERE id = ?`
	var h Hall
	var status string
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&h.ID, &h.Name, &h.Region, &h.Capacity, &h.PricePerSeat, &status, &h.OwnerID, &h.PhoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	h.Status, _ = model.ParseHallStatus(status)
	return &h, nil
}

// GetDetail loads a hall joined with its owner's contact information for the
// public single-hall page. Image and booked-date lists are fetched by their
// own repositories.
func (r *HallRepo) GetDetail(ctx context.Context, id uint64) (*HallDetail, error) {
	const q = `SELECT wh.id, wh.name, wh.region, wh.capacity, wh.price_per_seat, wh.status,
	                  wh.owner_id, wh.phone_number,
	                  u.phone_number, u.first_name, u.last_name
	           FROM wedding_halls wh
	           LEFT JOIN users u ON u.id = wh.owner_id
	           WHERE wh.id = ?`
	var d HallDetail
	var status string
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&d.ID, &d.Name, &d.Region, &d.Capacity, &d.PricePerSeat, &status,
			&d.OwnerID, &d.PhoneNumber,
			&d.ContactNumber, &d.OwnerFirstName, &d.OwnerLastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	d.Status, _ = model.ParseHallStatus(status)
	return &d, nil
}

// listQuery is shared by the three list views; only the WHERE clause differs.
const listQuery = `SELECT h.id, h.name, h.region, h.capacity, h.price_per_seat, h.status,
                          h.owner_id, h.phone_number, i.image_path
                   FROM wedding_halls h
                   LEFT JOIN hall_images i ON i.hall_id = h.id AND i.is_main = TRUE`

// ListPublic returns every hall with its main image for guest browsing.
func (r *HallRepo) ListPublic(ctx context.Context) ([]HallListItem, error) {
	return r.list(ctx, listQuery+" ORDER BY h.id")
}

// ListByOwner returns the halls owned by the given user.
func (r *HallRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]HallListItem, error) {
	return r.list(ctx, listQuery+" WHERE h.owner_id = ? ORDER BY h.id", ownerID)
}

// ListAll returns every hall for the admin view. Same shape as ListPublic;
// kept separate so the admin view can diverge without touching the public one.
func (r *HallRepo) ListAll(ctx context.Context) ([]HallListItem, error) {
	return r.list(ctx, listQuery+" ORDER BY h.id")
}

func (r *HallRepo) list(ctx context.Context, q string, args ...any) ([]HallListItem, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HallListItem, 0)
	for rows.Next() {
		var it HallListItem
		var status string
		if err := rows.Scan(&it.ID, &it.Name, &it.Region, &it.Capacity, &it.PricePerSeat,
			&status, &it.OwnerID, &it.PhoneNumber, &it.ImagePath); err != nil {
			return nil, err
		}
		it.Status, _ = model.ParseHallStatus(status)
		out = append(out, it)
	}
	return out, rows.Err()
}

// Update applies a partial edit. The SET clause is built only from supplied
// fields; an empty update is a no-op. Ownership checks happen in the handler
// against a previously loaded row.
func (r *HallRepo) Update(ctx context.Context, id uint64, upd HallUpdate) error {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)
	if upd.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *upd.Name)
	}
	if upd.Region != nil {
		sets = append(sets, "region = ?")
		args = append(args, *upd.Region)
	}
	if upd.Capacity != nil {
		sets = append(sets, "capacity = ?")
		args = append(args, *upd.Capacity)
	}
	if upd.PricePerSeat != nil {
		sets = append(sets, "price_per_seat = ?")
		args = append(args, *upd.PricePerSeat)
	}
	if upd.PhoneNumber != nil {
		sets = append(sets, "phone_number = ?")
		args = append(args, *upd.PhoneNumber)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*upd.Status))
	}
	if upd.OwnerSet {
		sets = append(sets, "owner_id = ?")
		if upd.Owner != nil {
			args = append(args, *upd.Owner)
		} else {
			args = append(args, nil)
		}
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	q := "UPDATE wedding_halls SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// Delete removes a hall and its images in one transaction. The delete is
// rejected with ErrHallBooked while any non-canceled booking references the
// hall; canceled bookings do not block it. Images cascade.
func (r *HallRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM wedding_halls WHERE id = ? FOR UPDATE", id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHallNotFound
		}
		return err
	}

	var booked uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM bookings WHERE hall_id = ? AND status <> 'canceled' LIMIT 1 FOR UPDATE", id).
		Scan(&booked)
	switch {
	case err == nil:
		return ErrHallBooked
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM hall_images WHERE hall_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM wedding_halls WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}
