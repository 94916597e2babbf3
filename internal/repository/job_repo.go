package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// ReservationIDsBefore returns the IDs of reservations in the given
// status whose calendar day is strictly before day.
func (r *JobRepository) ReservationIDsBefore(status string, day time.Time) ([]uuid.UUID, error) {
	rows, err := r.DB.Query(
		`SELECT id FROM reservations WHERE status = $1 AND reservation_date < $2`,
		status, day,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying %s reservations before %s: %w", status, day.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateReservationStatuses bulk-updates the status of the given
// reservations. Also refreshes updated_at.
func (r *JobRepository) UpdateReservationStatuses(ids []uuid.UUID, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.DB.Exec(
		`UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		newStatus, pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("error updating reservation statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d reservations to '%s'", rowsAffected, newStatus)
	}
	return nil
}
