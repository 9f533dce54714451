package reservation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// fakeRepo é um armazenamento em memória. WithShopLock usa um mutex por loja.
type fakeRepo struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex

	shops        map[uint]*models.Shop
	stylists     map[uint]*models.Stylist
	menus        map[uint]*models.Menu
	reservations []models.Reservation
	nextID       uint

	calls []string

	listDelay  time.Duration
	afterList  func()
	failShop   error
	failList   error
	failInsert error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		locks:    map[uint]*sync.Mutex{},
		shops:    map[uint]*models.Shop{},
		stylists: map[uint]*models.Stylist{},
		menus:    map[uint]*models.Menu{},
		nextID:   1,
	}
}

func (f *fakeRepo) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRepo) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRepo) GetShop(ctx context.Context, shopID uint) (*models.Shop, error) {
	f.record("GetShop")
	if f.failShop != nil {
		return nil, f.failShop
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shops[shopID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) GetShopStylist(ctx context.Context, shopID, stylistID uint) (*models.Stylist, error) {
	f.record("GetShopStylist")
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stylists[stylistID]
	if !ok || s.ShopID != shopID {
		return nil, domain.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) GetShopMenu(ctx context.Context, shopID, menuID uint) (*models.Menu, error) {
	f.record("GetShopMenu")
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.menus[menuID]
	if !ok || m.ShopID != shopID {
		return nil, domain.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) ListShopReservations(ctx context.Context, shopID uint, from, to time.Time) ([]models.Reservation, error) {
	f.record("ListShopReservations")
	if f.failList != nil {
		return nil, f.failList
	}
	if f.listDelay > 0 {
		time.Sleep(f.listDelay)
	}
	f.mu.Lock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.ShopID == shopID && !r.StartTime.Before(from) && r.StartTime.Before(to) {
			out = append(out, r)
		}
	}
	hook := f.afterList
	f.afterList = nil
	f.mu.Unlock()

	// roda uma vez, depois da leitura e fora do mutex
	if hook != nil {
		hook()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) WithShopLock(ctx context.Context, shopID uint, fn func(tx domain.ReservationTx) error) error {
	f.record("WithShopLock")
	f.mu.Lock()
	l, ok := f.locks[shopID]
	if !ok {
		l = &sync.Mutex{}
		f.locks[shopID] = l
	}
	f.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn(f)
}

func (f *fakeRepo) InsertReservation(ctx context.Context, r *models.Reservation) error {
	f.record("InsertReservation")
	if f.failInsert != nil {
		return f.failInsert
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = f.nextID
	f.nextID++
	f.reservations = append(f.reservations, *r)
	return nil
}

func (f *fakeRepo) ListUserReservations(ctx context.Context, userID uint) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) GetUserReservation(ctx context.Context, userID, reservationID uint) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == reservationID && r.UserID == userID {
			cp := r
			return &cp, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (f *fakeRepo) DeleteReservation(ctx context.Context, reservationID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.reservations {
		if r.ID == reservationID {
			f.reservations = append(f.reservations[:i], f.reservations[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepo) ListReservations(ctx context.Context, shopID *uint) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.reservations {
		if shopID == nil || r.ShopID == *shopID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) GetReservation(ctx context.Context, reservationID uint) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == reservationID {
			cp := r
			return &cp, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reservations)
}

var _ domain.Repository = (*fakeRepo)(nil)
var _ domain.ReservationTx = (*fakeRepo)(nil)

type fakeAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *fakeAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []string
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type fakeCache struct {
	mu          sync.Mutex
	versions    map[uint]int64
	entries     map[string][]domain.BusyInterval
	invalidated []uint
	sets        int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		versions: map[uint]int64{},
		entries:  map[string][]domain.BusyInterval{},
	}
}

func cacheKey(shopID uint, version int64, from time.Time, days int) string {
	return fmt.Sprintf("%d|%d|%s|%d", shopID, version, from.Format(time.RFC3339), days)
}

func (c *fakeCache) Version(ctx context.Context, shopID uint) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[shopID], nil
}

func (c *fakeCache) Get(ctx context.Context, shopID uint, version int64, from time.Time, days int) ([]domain.BusyInterval, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[cacheKey(shopID, version, from, days)]
	return v, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, shopID uint, version int64, from time.Time, days int, intervals []domain.BusyInterval) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[cacheKey(shopID, version, from, days)] = intervals
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, shopID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, shopID)
	c.versions[shopID]++
	return nil
}
