package booking

import (
	"fmt"
	"sort"
	"time"

	"roomly/models"
)

// In-memory repository fakes: an id-to-record map with linear scans for
// room/date lookups, mirroring the Mongo implementations' query semantics.

type fakeReservationRepo struct {
	byID map[string]*models.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byID: make(map[string]*models.Reservation)}
}

func (r *fakeReservationRepo) Create(res *models.Reservation) error {
	if _, exists := r.byID[res.ID]; exists {
		return fmt.Errorf("duplicate reservation id %s", res.ID)
	}
	now := time.Now()
	res.CreatedAt = now
	res.UpdatedAt = now
	cp := *res
	r.byID[res.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) GetByID(id string) (*models.Reservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *fakeReservationRepo) GetByRoom(roomID string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.byID {
		if res.RoomID == roomID {
			out = append(out, *res)
		}
	}
	sortReservations(out)
	return out, nil
}

func (r *fakeReservationRepo) GetByRoomAndDateRange(roomID, startDate, endDate string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range r.byID {
		if res.RoomID == roomID && res.StartDate <= endDate && res.EndDate >= startDate {
			out = append(out, *res)
		}
	}
	sortReservations(out)
	return out, nil
}

func (r *fakeReservationRepo) UpdateTimes(id, startDate, endDate, startTime, endTime string) (*models.Reservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("reservation with id %s not found", id)
	}
	res.StartDate = startDate
	res.EndDate = endDate
	res.StartTime = startTime
	res.EndTime = endTime
	res.UpdatedAt = time.Now()
	cp := *res
	return &cp, nil
}

func (r *fakeReservationRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("reservation with id %s not found", id)
	}
	delete(r.byID, id)
	return nil
}

func sortReservations(reservations []models.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].StartDate == reservations[j].StartDate {
			return reservations[i].StartTime < reservations[j].StartTime
		}
		return reservations[i].StartDate < reservations[j].StartDate
	})
}

type fakeRoomRepo struct {
	byID map[string]models.Room
}

func newFakeRoomRepo(ids ...string) *fakeRoomRepo {
	r := &fakeRoomRepo{byID: make(map[string]models.Room)}
	for _, id := range ids {
		r.byID[id] = models.Room{ID: id, Name: id}
	}
	return r
}

func (r *fakeRoomRepo) Create(room *models.Room) error {
	r.byID[room.ID] = *room
	return nil
}

func (r *fakeRoomRepo) GetByID(id string) (*models.Room, error) {
	room, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &room, nil
}

func (r *fakeRoomRepo) GetAll() ([]models.Room, error) {
	var out []models.Room
	for _, room := range r.byID {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRoomRepo) Exists(id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *fakeRoomRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

type fakeUserRepo struct {
	byID map[string]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: make(map[string]models.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.byID[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Exists(id string) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

// newTestEngine wires an engine against fresh fakes with a fixed clock.
func newTestEngine(now time.Time) (*DefaultSchedulingEngine, *fakeReservationRepo) {
	resRepo := newFakeReservationRepo()
	engine := &DefaultSchedulingEngine{
		ReservationRepo: resRepo,
		RoomRepo:        newFakeRoomRepo("room-1", "room-2", "room-3"),
		UserRepo: newFakeUserRepo(
			models.User{ID: "alice", Username: "Alice", Email: "alice@example.com"},
			models.User{ID: "bob", Username: "Bob", Email: "bob@example.com"},
		),
		Now: func() time.Time { return now },
	}
	return engine, resRepo
}

// seedReservation inserts a reservation directly, bypassing the booking
// decision tree.
func seedReservation(repo *fakeReservationRepo, id, roomID, ownerID, startDate, startTime, endTime string) models.Reservation {
	endDate := startDate
	if CrossesMidnight(startTime, endTime) {
		endDate = ShiftDate(startDate, 1)
	}
	res := models.Reservation{
		ID:        id,
		RoomID:    roomID,
		OwnerID:   ownerID,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
	}
	cp := res
	repo.byID[id] = &cp
	return res
}
