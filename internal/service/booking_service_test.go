package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/NafiGit/omnify/internal/model"
	"github.com/NafiGit/omnify/internal/queue"
	"github.com/NafiGit/omnify/internal/repository"
)

// memStore is an isolated in-memory store implementing ClassStore and
// BookingStore with the same atomicity contract as the MySQL repo: all
// of Create's checks and writes happen under one lock.
type memStore struct {
	mu         sync.Mutex
	classes    map[uint64]*model.FitnessClass
	bookings   []model.Booking
	nextID     uint64
	failCreate bool
}

func newMemStore(classes ...model.FitnessClass) *memStore {
	s := &memStore{classes: make(map[uint64]*model.FitnessClass), nextID: 1}
	for i := range classes {
		c := classes[i]
		s.classes[c.ID] = &c
	}
	return s
}

func (s *memStore) ListUpcoming(ctx context.Context) ([]model.FitnessClass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.FitnessClass, 0, len(s.classes))
	for _, c := range s.classes {
		if c.StartAt.After(time.Now()) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (s *memStore) GetByID(ctx context.Context, id uint64) (*model.FitnessClass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.classes[id]
	if !ok {
		return nil, repository.ErrClassNotFound
	}
	snapshot := *c
	return &snapshot, nil
}

func (s *memStore) Create(ctx context.Context, classID uint64, clientName, clientEmail string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		return 0, repository.ErrNotCreated
	}
	c, ok := s.classes[classID]
	if !ok || !c.StartAt.After(time.Now()) || c.AvailableSlots == 0 {
		return 0, repository.ErrNotCreated
	}
	for _, b := range s.bookings {
		if b.ClassID == classID && b.ClientEmail == clientEmail {
			return 0, repository.ErrNotCreated
		}
	}
	id := s.nextID
	s.nextID++
	s.bookings = append(s.bookings, model.Booking{
		ID: id, ClassID: classID, ClientName: clientName, ClientEmail: clientEmail,
		BookingDate: c.StartAt, CreatedAt: time.Now(),
	})
	c.AvailableSlots--
	return id, nil
}

func (s *memStore) HasBooking(ctx context.Context, classID uint64, clientEmail string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ClassID == classID && b.ClientEmail == clientEmail {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) ListByEmail(ctx context.Context, email string) ([]model.BookingHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.BookingHistory, 0)
	for _, b := range s.bookings {
		if b.ClientEmail == email {
			out = append(out, model.BookingHistory{
				ID: b.ID, ClassName: s.classes[b.ClassID].Name,
				ClientName: b.ClientName, ClientEmail: b.ClientEmail, BookingDate: b.BookingDate,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingDate.After(out[j].BookingDate) })
	return out, nil
}

// bookingStore adapts memStore to the BookingStore interface (GetByID
// collides between the two store interfaces).
type bookingStore struct{ *memStore }

func (s bookingStore) GetByID(ctx context.Context, id uint64) (*model.BookingHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return &model.BookingHistory{
				ID: b.ID, ClassName: s.classes[b.ClassID].Name,
				ClientName: b.ClientName, ClientEmail: b.ClientEmail, BookingDate: b.BookingDate,
			}, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

// capturePublisher records published events.
type capturePublisher struct {
	mu     sync.Mutex
	events []queue.BookingCreatedEvent
}

func (p *capturePublisher) PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func newTestService(store *memStore) (*BookingService, *capturePublisher) {
	pub := &capturePublisher{}
	return NewBookingService(store, bookingStore{store}, pub), pub
}

func futureClass(id uint64, name string, in time.Duration, available, total uint32) model.FitnessClass {
	return model.FitnessClass{
		ID: id, Name: name, StartAt: time.Now().Add(in).UTC(),
		Instructor: "Sarah Johnson", AvailableSlots: available, TotalSlots: total,
	}
}

func TestValidate(t *testing.T) {
	store := newMemStore(
		futureClass(1, "Yoga", 24*time.Hour, 5, 20),
		futureClass(2, "Zumba", 24*time.Hour, 0, 15),
		futureClass(3, "HIIT", -2*time.Hour, 8, 12), // already started
	)
	svc, _ := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, "Jane Doe", "taken@example.com"); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	tests := []struct {
		name    string
		classID uint64
		email   string
		want    error
	}{
		{"unknown class", 99, "a@example.com", repository.ErrClassNotFound},
		{"past class", 3, "a@example.com", repository.ErrClassNotFound},
		{"full class", 2, "a@example.com", repository.ErrNoSlots},
		{"duplicate", 1, "taken@example.com", repository.ErrDuplicateBooking},
		{"admissible", 1, "free@example.com", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(ctx, tt.classID, tt.email)
			if !errors.Is(err, tt.want) && !(err == nil && tt.want == nil) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreate_Success(t *testing.T) {
	store := newMemStore(futureClass(1, "Yoga", 24*time.Hour, 20, 20))
	svc, pub := newTestService(store)

	res, err := svc.Create(context.Background(), 1, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if res.BookingID == 0 {
		t.Error("BookingID not assigned")
	}
	if res.ClassName != "Yoga" {
		t.Errorf("ClassName = %q, want Yoga", res.ClassName)
	}
	if res.Message != "Booking successful!" {
		t.Errorf("Message = %q", res.Message)
	}
	if got := store.classes[1].AvailableSlots; got != 19 {
		t.Errorf("available slots = %d, want 19", got)
	}
	if len(pub.events) != 1 || pub.events[0].BookingID != res.BookingID {
		t.Errorf("expected one published event for booking %d, got %+v", res.BookingID, pub.events)
	}
}

func TestCreate_RejectionIsIdempotent(t *testing.T) {
	store := newMemStore(futureClass(1, "Pilates", 24*time.Hour, 10, 10))
	svc, _ := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, "Jane Doe", "jane@example.com"); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, 1, "Jane Doe", "jane@example.com")
		if !errors.Is(err, repository.ErrDuplicateBooking) {
			t.Fatalf("attempt %d: error = %v, want ErrDuplicateBooking", i+2, err)
		}
	}
	if got := store.classes[1].AvailableSlots; got != 9 {
		t.Errorf("available slots = %d, want 9 (duplicates must not decrement)", got)
	}
}

func TestCreate_LastSlot(t *testing.T) {
	store := newMemStore(futureClass(1, "Spinning", 24*time.Hour, 1, 18))
	svc, _ := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, "First Client", "first@example.com"); err != nil {
		t.Fatalf("booking last slot failed: %v", err)
	}
	_, err := svc.Create(ctx, 1, "Second Client", "second@example.com")
	if !errors.Is(err, repository.ErrNoSlots) {
		t.Fatalf("second booking error = %v, want ErrNoSlots", err)
	}
	if got := store.classes[1].AvailableSlots; got != 0 {
		t.Errorf("available slots = %d, want 0", got)
	}
}

func TestCreate_PastClass(t *testing.T) {
	store := newMemStore(futureClass(1, "HIIT", -time.Hour, 12, 12))
	svc, _ := newTestService(store)

	_, err := svc.Create(context.Background(), 1, "Jane Doe", "jane@example.com")
	if !errors.Is(err, repository.ErrClassNotFound) {
		t.Fatalf("Create() error = %v, want ErrClassNotFound", err)
	}
}

func TestCreate_StorageFault(t *testing.T) {
	store := newMemStore(futureClass(1, "Yoga", 24*time.Hour, 20, 20))
	store.failCreate = true
	svc, pub := newTestService(store)

	_, err := svc.Create(context.Background(), 1, "Jane Doe", "jane@example.com")
	if !errors.Is(err, repository.ErrNotCreated) {
		t.Fatalf("Create() error = %v, want ErrNotCreated", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("no event should be published on failure, got %d", len(pub.events))
	}
}

func TestCreate_Concurrent(t *testing.T) {
	const capacity = 5
	const attempts = 20
	store := newMemStore(futureClass(1, "Yoga", 24*time.Hour, capacity, capacity))
	svc, _ := newTestService(store)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := string(rune('a'+i)) + "@example.com"
			_, errs[i] = svc.Create(context.Background(), 1, "Client", email)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != capacity {
		t.Errorf("successes = %d, want %d", succeeded, capacity)
	}
	if got := store.classes[1].AvailableSlots; got != 0 {
		t.Errorf("available slots = %d, want 0", got)
	}
	if len(store.bookings) != capacity {
		t.Errorf("bookings = %d, want %d", len(store.bookings), capacity)
	}
}

func TestListClasses_ExcludesPast(t *testing.T) {
	store := newMemStore(
		futureClass(1, "Yoga", 24*time.Hour, 20, 20),
		futureClass(2, "Zumba", -time.Hour, 15, 15),
		futureClass(3, "HIIT", 2*time.Hour, 12, 12),
	)
	svc, _ := newTestService(store)

	classes, err := svc.ListClasses(context.Background())
	if err != nil {
		t.Fatalf("ListClasses() error = %v", err)
	}
	if len(classes) != 2 {
		t.Fatalf("got %d classes, want 2", len(classes))
	}
	// soonest first
	if classes[0].Name != "HIIT" || classes[1].Name != "Yoga" {
		t.Errorf("order = [%s %s], want [HIIT Yoga]", classes[0].Name, classes[1].Name)
	}
}

func TestStatistics(t *testing.T) {
	t.Run("mixed utilization", func(t *testing.T) {
		store := newMemStore(
			futureClass(1, "Yoga", 24*time.Hour, 15, 20), // 5 booked
			futureClass(2, "Zumba", 24*time.Hour, 0, 15), // 15 booked
		)
		svc, _ := newTestService(store)

		stats, err := svc.Statistics(context.Background())
		if err != nil {
			t.Fatalf("Statistics() error = %v", err)
		}
		if stats.TotalClasses != 2 {
			t.Errorf("TotalClasses = %d, want 2", stats.TotalClasses)
		}
		if stats.TotalSlots != 35 {
			t.Errorf("TotalSlots = %d, want 35", stats.TotalSlots)
		}
		if stats.BookedSlots != 20 {
			t.Errorf("BookedSlots = %d, want 20", stats.BookedSlots)
		}
		if stats.BookingPercentage != 57.14 {
			t.Errorf("BookingPercentage = %v, want 57.14", stats.BookingPercentage)
		}
	})

	t.Run("no classes", func(t *testing.T) {
		svc, _ := newTestService(newMemStore())
		stats, err := svc.Statistics(context.Background())
		if err != nil {
			t.Fatalf("Statistics() error = %v", err)
		}
		if stats.TotalSlots != 0 || stats.BookingPercentage != 0 {
			t.Errorf("empty store stats = %+v, want zeros", stats)
		}
	})
}

func TestGetBooking(t *testing.T) {
	store := newMemStore(futureClass(1, "Yoga", 24*time.Hour, 20, 20))
	svc, _ := newTestService(store)
	ctx := context.Background()

	res, err := svc.Create(ctx, 1, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err := svc.GetBooking(ctx, res.BookingID)
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if got.ClassName != "Yoga" || got.ClientEmail != "jane@example.com" {
		t.Errorf("booking = %+v", got)
	}
	if _, err := svc.GetBooking(ctx, 9999); !errors.Is(err, repository.ErrBookingNotFound) {
		t.Errorf("missing booking error = %v, want ErrBookingNotFound", err)
	}
}
