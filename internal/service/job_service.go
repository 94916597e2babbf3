package service

import (
	"fmt"
	"log"
	"time"

	"ristorante/internal/db"
	"ristorante/internal/repository"
)

// JobService runs the scheduled status sweep: confirmed reservations
// whose day has passed become completed, pending ones that were never
// confirmed before their day passed become cancelled. Both moves are
// legal lifecycle transitions, so the sweep never touches terminal
// records.
type JobService struct {
	Repo *repository.JobRepository
	loc  *time.Location
}

func NewJobService(repo *repository.JobRepository, loc *time.Location) *JobService {
	return &JobService{Repo: repo, loc: loc}
}

func (s *JobService) SweepPastReservations() error {
	now := time.Now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	if err := s.sweep(db.StatusConfirmed, db.StatusCompleted, today); err != nil {
		return err
	}
	return s.sweep(db.StatusPending, db.StatusCancelled, today)
}

func (s *JobService) sweep(from, to string, today time.Time) error {
	ids, err := s.Repo.ReservationIDsBefore(from, today)
	if err != nil {
		return fmt.Errorf("sweep: failed to list %s reservations: %w", from, err)
	}
	if len(ids) == 0 {
		return nil
	}
	log.Printf("Sweep: marking %d %s reservations as %s", len(ids), from, to)
	if err := s.Repo.UpdateReservationStatuses(ids, to); err != nil {
		return fmt.Errorf("sweep: failed to update %s reservations: %w", from, err)
	}
	return nil
}
