package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ristorante/internal/db"
	"ristorante/internal/entities"
	"ristorante/internal/reserr"
	"ristorante/internal/storetest"
)

func newReservationService(store ReservationStore, t *testing.T) *ReservationService {
	t.Helper()
	return NewReservationService(store, testGrid(t), 15, time.Local)
}

func validRequest(date string, timeStr string, people int) *entities.ReservationRequest {
	return &entities.ReservationRequest{
		FullName:       "Ada Lovelace",
		Email:          "ada@example.com",
		Phone:          "+390612345678",
		Date:           date,
		Time:           timeStr,
		NumberOfPeople: people,
	}
}

func TestCreateReservationHappyPath(t *testing.T) {
	svc := newReservationService(storetest.NewMemStore(), t)
	_, date := futureDay(t, 7)

	res, err := svc.CreateReservation(validRequest(date, "19:00", 4))
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, db.StatusPending, res.Status)
	assert.Equal(t, date, res.Date)
	assert.Equal(t, "19:00", res.Time)
	assert.Equal(t, 4, res.NumberOfPeople)
	assert.False(t, res.CreatedAt.IsZero())
}

func TestCreateReservationRequiredFields(t *testing.T) {
	svc := newReservationService(storetest.NewMemStore(), t)
	_, date := futureDay(t, 7)

	cases := []struct {
		field  string
		mutate func(*entities.ReservationRequest)
	}{
		{"fullName", func(r *entities.ReservationRequest) { r.FullName = "" }},
		{"email", func(r *entities.ReservationRequest) { r.Email = "  " }},
		{"phone", func(r *entities.ReservationRequest) { r.Phone = "" }},
		{"date", func(r *entities.ReservationRequest) { r.Date = "" }},
		{"time", func(r *entities.ReservationRequest) { r.Time = "" }},
	}
	for _, tc := range cases {
		req := validRequest(date, "19:00", 2)
		tc.mutate(req)
		_, err := svc.CreateReservation(req)
		var validation *reserr.ValidationError
		require.ErrorAs(t, err, &validation, "missing %s", tc.field)
		assert.Equal(t, tc.field, validation.Field)
	}
}

func TestCreateReservationPartySizeBounds(t *testing.T) {
	svc := newReservationService(storetest.NewMemStore(), t)
	_, date := futureDay(t, 7)

	var validation *reserr.ValidationError
	_, err := svc.CreateReservation(validRequest(date, "19:00", 0))
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "numberOfPeople", validation.Field)

	_, err = svc.CreateReservation(validRequest(date, "19:00", 16))
	require.ErrorAs(t, err, &validation)

	_, err = svc.CreateReservation(validRequest(date, "19:00", 15))
	assert.NoError(t, err, "full-capacity party is allowed")
}

func TestCreateReservationTimeGrid(t *testing.T) {
	svc := newReservationService(storetest.NewMemStore(), t)
	_, date := futureDay(t, 7)

	for _, bad := range []string{"10:15", "22:00", "10:37", "23:30", "nope"} {
		_, err := svc.CreateReservation(validRequest(date, bad, 2))
		var validation *reserr.ValidationError
		require.ErrorAs(t, err, &validation, "time %s must be rejected", bad)
		assert.Equal(t, "time", validation.Field)
	}

	for _, good := range []string{"10:30", "21:45"} {
		_, err := svc.CreateReservation(validRequest(date, good, 2))
		assert.NoError(t, err, "time %s must be accepted", good)
	}
}

func TestCreateReservationPastDate(t *testing.T) {
	svc := newReservationService(storetest.NewMemStore(), t)
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := svc.CreateReservation(validRequest(yesterday, "19:00", 2))
	var validation *reserr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "date", validation.Field)

	_, err = svc.CreateReservation(validRequest("06/01/2030", "19:00", 2))
	require.ErrorAs(t, err, &validation)
}

func TestCreateReservationCapacityScenario(t *testing.T) {
	store := storetest.NewMemStore()
	svc := newReservationService(store, t)
	day, date := futureDay(t, 7)
	store.Seed(day, "19:00", 10, db.StatusConfirmed)

	// 10 + 6 = 16 > 15: rejected with precise numbers.
	_, err := svc.CreateReservation(validRequest(date, "19:00", 6))
	var capacity *reserr.CapacityExceededError
	require.ErrorAs(t, err, &capacity)
	assert.Equal(t, 10, capacity.Current)
	assert.Equal(t, 5, capacity.Remaining)
	assert.Equal(t, 6, capacity.Requested)

	// Exactly the remaining capacity fits.
	_, err = svc.CreateReservation(validRequest(date, "19:00", 5))
	require.NoError(t, err)

	// Slot is now full; one more person is rejected.
	_, err = svc.CreateReservation(validRequest(date, "19:00", 1))
	require.ErrorAs(t, err, &capacity)
	assert.Equal(t, 15, capacity.Current)
	assert.Equal(t, 0, capacity.Remaining)

	// The next availability read reports the slot as full.
	avail := newAvailability(store, t)
	days, err := avail.AvailableDates(date, date)
	require.NoError(t, err)
	assert.Equal(t, 15, days[date].TimeSlots["19:00"])

	// Another slot on the same day is unaffected.
	_, err = svc.CreateReservation(validRequest(date, "20:00", 15))
	assert.NoError(t, err)
}

func TestCreateReservationExactFitBoundary(t *testing.T) {
	store := storetest.NewMemStore()
	svc := newReservationService(store, t)
	day, date := futureDay(t, 7)

	_, err := svc.CreateReservation(validRequest(date, "12:30", 15))
	require.NoError(t, err, "empty slot seats a full party")

	store.Seed(day, "13:00", 1, db.StatusPending)
	_, err = svc.CreateReservation(validRequest(date, "13:00", 15))
	var capacity *reserr.CapacityExceededError
	require.ErrorAs(t, err, &capacity)
	assert.Equal(t, 1, capacity.Current)
	assert.Equal(t, 14, capacity.Remaining)
}

func TestCancellationFreesCapacity(t *testing.T) {
	store := storetest.NewMemStore()
	svc := newReservationService(store, t)
	_, date := futureDay(t, 7)

	res, err := svc.CreateReservation(validRequest(date, "19:00", 5))
	require.NoError(t, err)

	// Slot holds 5; a full party no longer fits.
	_, err = svc.CreateReservation(validRequest(date, "19:00", 15))
	var capacity *reserr.CapacityExceededError
	require.ErrorAs(t, err, &capacity)

	id, err := uuid.Parse(res.ID)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(id, db.StatusCancelled)
	require.NoError(t, err)

	_, err = svc.CreateReservation(validRequest(date, "19:00", 15))
	assert.NoError(t, err, "cancellation freed the seats")
}

// TestConcurrentAdmission spawns attempts summing to twice the
// capacity for one slot and asserts the accepted total never exceeds
// it.
func TestConcurrentAdmission(t *testing.T) {
	store := storetest.NewMemStore()
	svc := newReservationService(store, t)
	_, date := futureDay(t, 7)

	const attempts = 30
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest(date, "19:00", 1)
			req.FullName = fmt.Sprintf("Guest %d", i)
			_, err := svc.CreateReservation(req)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	accepted, rejected := 0, 0
	for err := range results {
		if err == nil {
			accepted++
			continue
		}
		var capacity *reserr.CapacityExceededError
		require.ErrorAs(t, err, &capacity)
		rejected++
	}
	assert.Equal(t, 15, accepted)
	assert.Equal(t, attempts-15, rejected)

	reservations, err := store.List(date, db.StatusPending)
	require.NoError(t, err)
	total := 0
	for _, res := range reservations {
		total += res.NumberOfPeople
	}
	assert.Equal(t, 15, total, "occupancy never exceeds capacity")
}

func TestUpdateStatusLifecycle(t *testing.T) {
	store := storetest.NewMemStore()
	svc := newReservationService(store, t)
	day, _ := futureDay(t, 7)

	id := store.Seed(day, "19:00", 2, db.StatusPending)
	res, err := svc.UpdateStatus(id, db.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, db.StatusConfirmed, res.Status)

	res, err = svc.UpdateStatus(id, db.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, db.StatusCompleted, res.Status)

	// Completed is terminal: every further transition fails.
	for _, to := range []string{db.StatusPending, db.StatusConfirmed, db.StatusCancelled, db.StatusCompleted} {
		_, err = svc.UpdateStatus(id, to)
		var illegal *reserr.IllegalTransitionError
		require.ErrorAs(t, err, &illegal, "completed -> %s", to)
	}

	cancelled := store.Seed(day, "20:00", 2, db.StatusCancelled)
	for _, to := range []string{db.StatusPending, db.StatusConfirmed, db.StatusCompleted} {
		_, err = svc.UpdateStatus(cancelled, to)
		var illegal *reserr.IllegalTransitionError
		require.ErrorAs(t, err, &illegal, "cancelled -> %s", to)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	store := storetest.NewMemStore()
	svc := newReservationService(store, t)
	day, _ := futureDay(t, 7)
	id := store.Seed(day, "19:00", 2, db.StatusPending)

	_, err := svc.UpdateStatus(id, "archived")
	var validation *reserr.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = svc.UpdateStatus(uuid.New(), db.StatusConfirmed)
	var notFound *reserr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeleteReservation(t *testing.T) {
	store := storetest.NewMemStore()
	svc := newReservationService(store, t)
	day, _ := futureDay(t, 7)

	pending := store.Seed(day, "19:00", 2, db.StatusPending)
	require.NoError(t, svc.DeleteReservation(pending))

	cancelled := store.Seed(day, "19:00", 2, db.StatusCancelled)
	require.NoError(t, svc.DeleteReservation(cancelled), "cancelled records may be deleted")

	completed := store.Seed(day, "19:00", 2, db.StatusCompleted)
	err := svc.DeleteReservation(completed)
	var immutable *reserr.ImmutableRecordError
	require.ErrorAs(t, err, &immutable)
	assert.Equal(t, db.StatusCompleted, immutable.Status)

	_, err = svc.GetReservation(completed)
	assert.NoError(t, err, "completed record must still exist")

	err = svc.DeleteReservation(uuid.New())
	var notFound *reserr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListReservations(t *testing.T) {
	store := storetest.NewMemStore()
	svc := newReservationService(store, t)
	day, date := futureDay(t, 7)
	otherDay, _ := futureDay(t, 8)

	store.Seed(day, "19:00", 2, db.StatusPending)
	store.Seed(day, "20:00", 4, db.StatusConfirmed)
	store.Seed(otherDay, "19:00", 3, db.StatusPending)

	list, err := svc.ListReservations(date, "")
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	list, err = svc.ListReservations(date, db.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	_, err = svc.ListReservations(date, "archived")
	var validation *reserr.ValidationError
	require.ErrorAs(t, err, &validation)
}
