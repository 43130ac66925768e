// Package pantry models the household inventory and expiry tracking
package pantry

import (
	"strings"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/google/uuid"
)

// Location is where an item is stored
type Location string

const (
	LocationFridge  Location = "fridge"
	LocationFreezer Location = "freezer"
	LocationPantry  Location = "pantry"
)

// Valid reports whether the location is one of the known storage places
func (l Location) Valid() bool {
	switch l {
	case LocationFridge, LocationFreezer, LocationPantry:
		return true
	}
	return false
}

// ExpiryStatus classifies an item relative to today
type ExpiryStatus string

const (
	StatusExpired  ExpiryStatus = "expired"
	StatusExpiring ExpiryStatus = "expiring"
	StatusFresh    ExpiryStatus = "fresh"
	StatusUnknown  ExpiryStatus = "unknown"
)

// Item is one stocked ingredient
type Item struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	name      string
	quantity  string
	unit      string
	category  string
	location  Location
	expiresAt *time.Time
	addedAt   time.Time
	updatedAt time.Time
}

// Fields is the editable content of an item
type Fields struct {
	Name      string
	Quantity  string
	Unit      string
	Category  string
	Location  Location
	ExpiresAt *time.Time
}

// NewItem creates a pantry item
func NewItem(ownerID uuid.UUID, f Fields) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	f, err := clean(f)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Item{
		id:        uuid.New(),
		ownerID:   ownerID,
		name:      f.Name,
		quantity:  f.Quantity,
		unit:      f.Unit,
		category:  f.Category,
		location:  f.Location,
		expiresAt: f.ExpiresAt,
		addedAt:   now,
		updatedAt: now,
	}, nil
}

// Snapshot is the persisted state of an item
type Snapshot struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Fields    Fields
	AddedAt   time.Time
	UpdatedAt time.Time
}

// Rehydrate rebuilds an item from storage
func Rehydrate(s Snapshot) *Item {
	return &Item{
		id:        s.ID,
		ownerID:   s.OwnerID,
		name:      s.Fields.Name,
		quantity:  s.Fields.Quantity,
		unit:      s.Fields.Unit,
		category:  s.Fields.Category,
		location:  s.Fields.Location,
		expiresAt: s.Fields.ExpiresAt,
		addedAt:   s.AddedAt,
		updatedAt: s.UpdatedAt,
	}
}

func (i *Item) ID() uuid.UUID         { return i.id }
func (i *Item) OwnerID() uuid.UUID    { return i.ownerID }
func (i *Item) Name() string          { return i.name }
func (i *Item) Quantity() string      { return i.quantity }
func (i *Item) Unit() string          { return i.unit }
func (i *Item) Category() string      { return i.category }
func (i *Item) Location() Location    { return i.location }
func (i *Item) ExpiresAt() *time.Time { return i.expiresAt }
func (i *Item) AddedAt() time.Time    { return i.addedAt }
func (i *Item) UpdatedAt() time.Time  { return i.updatedAt }

// Fields returns a copy of the editable content
func (i *Item) Fields() Fields {
	return Fields{
		Name:      i.name,
		Quantity:  i.quantity,
		Unit:      i.unit,
		Category:  i.category,
		Location:  i.location,
		ExpiresAt: i.expiresAt,
	}
}

// Update replaces the editable content
func (i *Item) Update(f Fields) error {
	f, err := clean(f)
	if err != nil {
		return err
	}
	i.name = f.Name
	i.quantity = f.Quantity
	i.unit = f.Unit
	i.category = f.Category
	i.location = f.Location
	i.expiresAt = f.ExpiresAt
	i.updatedAt = time.Now()
	return nil
}

// Consume subtracts amount from a numeric quantity. It returns true when the
// item is used up and should be removed.
func (i *Item) Consume(amount float64) (bool, error) {
	if amount <= 0 {
		return false, ErrInvalidAmount
	}
	q, ok := measurement.ParseQuantity(i.quantity)
	if !ok || q.IsRange {
		return false, ErrNonNumericQuantity
	}

	remaining := q.Low - amount
	if remaining <= 0 {
		i.quantity = "0"
		i.updatedAt = time.Now()
		return true, nil
	}

	i.quantity = measurement.FormatNumber(remaining)
	i.updatedAt = time.Now()
	return false, nil
}

// Status classifies the item. Expired means the expiry day is before today;
// expiring means it falls within window days from today.
func (i *Item) Status(now time.Time, windowDays int) ExpiryStatus {
	if i.expiresAt == nil {
		return StatusUnknown
	}

	today := startOfDay(now)
	expiry := startOfDay(i.expiresAt.In(now.Location()))

	switch {
	case expiry.Before(today):
		return StatusExpired
	case !expiry.After(today.AddDate(0, 0, windowDays)):
		return StatusExpiring
	default:
		return StatusFresh
	}
}

// DaysUntilExpiry returns whole days until the expiry day, negative when past.
// The boolean is false when the item has no expiry date.
func (i *Item) DaysUntilExpiry(now time.Time) (int, bool) {
	if i.expiresAt == nil {
		return 0, false
	}
	return calendarDays(now, i.expiresAt.In(now.Location())), true
}

// calendarDays counts date boundaries between from and to, ignoring clock
// time and DST shifts in their zone
func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func clean(f Fields) (Fields, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Quantity = strings.TrimSpace(f.Quantity)
	f.Unit = strings.TrimSpace(f.Unit)
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))

	if f.Name == "" {
		return f, ErrNameRequired
	}
	if len([]rune(f.Name)) > 100 {
		return f, ErrNameTooLong
	}
	if f.Location == "" {
		f.Location = LocationPantry
	}
	if !f.Location.Valid() {
		return f, ErrInvalidLocation
	}
	return f, nil
}
