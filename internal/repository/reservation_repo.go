package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"ristorante/internal/db"
	"ristorante/internal/reserr"
	"ristorante/internal/slot"
)

const reservationColumns = `id, full_name, email, phone, reservation_date, reservation_time, number_of_people, notes, status, created_at, updated_at`

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

// BookSlot inserts res if the slot's current occupancy plus the party
// still fits within capacity. Occupancy is re-derived from persisted
// state inside the same transaction as the insert, so the check and
// the write form one logical operation. Callers serialize concurrent
// attempts for the same slot; see service.ReservationService.
func (r *ReservationRepository) BookSlot(res *db.Reservation, capacity int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRow(`
		SELECT COALESCE(SUM(number_of_people), 0)
		FROM reservations
		WHERE reservation_date = $1 AND reservation_time = $2
		  AND status IN ($3, $4)`,
		res.Date, res.Time, db.StatusPending, db.StatusConfirmed,
	).Scan(&current)
	if err != nil {
		return fmt.Errorf("error deriving slot occupancy: %w", err)
	}

	if current+res.NumberOfPeople > capacity {
		return &reserr.CapacityExceededError{
			Date:      res.Date.Format(slot.DateLayout),
			Time:      res.Time,
			Requested: res.NumberOfPeople,
			Current:   current,
			Remaining: capacity - current,
		}
	}

	err = tx.QueryRow(`
		INSERT INTO reservations
		(id, full_name, email, phone, reservation_date, reservation_time, number_of_people, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at`,
		res.ID, res.FullName, res.Email, res.Phone, res.Date, res.Time,
		res.NumberOfPeople, res.Notes, res.Status,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting reservation: %w", err)
	}

	return tx.Commit()
}

func (r *ReservationRepository) GetByID(id uuid.UUID) (*db.Reservation, error) {
	row := r.DB.QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &reserr.NotFoundError{ID: id.String()}
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return res, nil
}

// ListByDateRange returns every reservation whose date falls within
// [from, to], regardless of status. Occupancy filtering happens in the
// service layer.
func (r *ReservationRepository) ListByDateRange(from, to time.Time) ([]db.Reservation, error) {
	rows, err := r.DB.Query(`
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE reservation_date BETWEEN $1 AND $2
		ORDER BY reservation_date, reservation_time`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations by date range: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *ReservationRepository) List(date, status string) ([]db.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += " AND reservation_date = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY reservation_date DESC, reservation_time DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// UpdateStatus sets a reservation's status after re-reading its
// current one under a row lock and passing it through check. A stale
// client can therefore never revert a record that has already reached
// a terminal status.
func (r *ReservationRepository) UpdateStatus(id uuid.UUID, newStatus string, check func(current string) error) (*db.Reservation, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting status transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRow(`SELECT status FROM reservations WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &reserr.NotFoundError{ID: id.String()}
		}
		return nil, fmt.Errorf("error reading reservation status: %w", err)
	}

	if err := check(current); err != nil {
		return nil, err
	}

	row := tx.QueryRow(`
		UPDATE reservations SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+reservationColumns,
		newStatus, id,
	)
	res, err := scanReservation(row)
	if err != nil {
		return nil, fmt.Errorf("error updating reservation status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing status update: %w", err)
	}
	return res, nil
}

// Delete removes a reservation after re-reading its current status
// under a row lock and passing it through check.
func (r *ReservationRepository) Delete(id uuid.UUID, check func(current string) error) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting delete transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRow(`SELECT status FROM reservations WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &reserr.NotFoundError{ID: id.String()}
		}
		return fmt.Errorf("error reading reservation status: %w", err)
	}

	if err := check(current); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM reservations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting reservation: %w", err)
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*db.Reservation, error) {
	var res db.Reservation
	err := row.Scan(
		&res.ID, &res.FullName, &res.Email, &res.Phone, &res.Date, &res.Time,
		&res.NumberOfPeople, &res.Notes, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]db.Reservation, error) {
	var reservations []db.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return reservations, nil
}
