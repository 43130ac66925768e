// Package pantry provides the application layer for pantry inventory
package pantry

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/pantry"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultExpiringWindowDays is used when neither config nor caller sets a window
const DefaultExpiringWindowDays = 3

// Config holds pantry settings
type Config struct {
	ExpiringWindowDays int
}

// PantryService implements the pantry use cases
type PantryService struct {
	repo   outbound.PantryRepository
	window int
	now    func() time.Time
	logger *zap.Logger
}

var _ inbound.PantryService = (*PantryService)(nil)

// NewPantryService creates a new pantry service
func NewPantryService(repo outbound.PantryRepository, cfg Config, logger *zap.Logger) *PantryService {
	window := cfg.ExpiringWindowDays
	if window <= 0 {
		window = DefaultExpiringWindowDays
	}
	return &PantryService{
		repo:   repo,
		window: window,
		now:    time.Now,
		logger: logger.Named("pantry-service"),
	}
}

// AddItem stores a new pantry item
func (s *PantryService) AddItem(ctx context.Context, cmd inbound.AddPantryItemCommand) (*inbound.PantryItemDTO, error) {
	item, err := pantry.NewItem(cmd.UserID, pantry.Fields{
		Name:      cmd.Name,
		Quantity:  cmd.Quantity,
		Unit:      cmd.Unit,
		Category:  cmd.Category,
		Location:  cmd.Location,
		ExpiresAt: cmd.ExpiresAt,
	})
	if err != nil {
		return nil, domainError(err)
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("create pantry item", err)
	}

	s.logger.Info("Pantry item added",
		zap.String("item_id", item.ID().String()),
		zap.String("user_id", cmd.UserID.String()),
		zap.String("location", string(item.Location())),
	)

	return s.toDTO(item), nil
}

// UpdateItem applies a partial update
func (s *PantryService) UpdateItem(ctx context.Context, cmd inbound.UpdatePantryItemCommand) (*inbound.PantryItemDTO, error) {
	item, err := s.load(ctx, cmd.UserID, cmd.ItemID)
	if err != nil {
		return nil, err
	}

	f := item.Fields()
	if cmd.Name != nil {
		f.Name = *cmd.Name
	}
	if cmd.Quantity != nil {
		f.Quantity = *cmd.Quantity
	}
	if cmd.Unit != nil {
		f.Unit = *cmd.Unit
	}
	if cmd.Category != nil {
		f.Category = *cmd.Category
	}
	if cmd.Location != nil {
		f.Location = *cmd.Location
	}
	if cmd.ExpiresAt != nil {
		f.ExpiresAt = cmd.ExpiresAt
	}
	if cmd.ClearExpiry {
		f.ExpiresAt = nil
	}

	if err := item.Update(f); err != nil {
		return nil, domainError(err)
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("update pantry item", err)
	}

	return s.toDTO(item), nil
}

// RemoveItem deletes an item
func (s *PantryService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.load(ctx, userID, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return errors.NewDatabaseError("delete pantry item", err)
	}

	s.logger.Info("Pantry item removed", zap.String("item_id", itemID.String()))
	return nil
}

// ConsumeItem decrements an item's quantity and removes it once used up.
// The returned DTO shows a quantity of 0 when the item was removed.
func (s *PantryService) ConsumeItem(ctx context.Context, userID, itemID uuid.UUID, amount float64) (*inbound.PantryItemDTO, error) {
	item, err := s.load(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	empty, err := item.Consume(amount)
	if err != nil {
		return nil, domainError(err)
	}

	if empty {
		if err := s.repo.Delete(ctx, itemID); err != nil {
			return nil, errors.NewDatabaseError("delete pantry item", err)
		}
		s.logger.Info("Pantry item used up", zap.String("item_id", itemID.String()))
		return s.toDTO(item), nil
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("update pantry item", err)
	}
	return s.toDTO(item), nil
}

// ListItems lists the user's items, optionally for one location
func (s *PantryService) ListItems(ctx context.Context, userID uuid.UUID, location pantry.Location) ([]*inbound.PantryItemDTO, error) {
	if location != "" && !location.Valid() {
		return nil, domainError(pantry.ErrInvalidLocation)
	}

	items, err := s.repo.FindByOwner(ctx, userID, location)
	if err != nil {
		return nil, errors.NewDatabaseError("find pantry items", err)
	}
	return s.toDTOs(items), nil
}

// ListExpiring lists items that expire within the window, including expired
// ones, soonest first. A non-positive window uses the configured default.
func (s *PantryService) ListExpiring(ctx context.Context, userID uuid.UUID, withinDays int) ([]*inbound.PantryItemDTO, error) {
	if withinDays <= 0 {
		withinDays = s.window
	}

	now := s.now()
	y, m, d := now.Date()
	cutoff := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, withinDays+1)

	items, err := s.repo.FindExpiringBefore(ctx, userID, cutoff)
	if err != nil {
		return nil, errors.NewDatabaseError("find expiring pantry items", err)
	}

	out := make([]*inbound.PantryItemDTO, 0, len(items))
	for _, item := range items {
		dto := s.toDTOWithWindow(item, withinDays)
		if dto.Status == pantry.StatusExpired || dto.Status == pantry.StatusExpiring {
			out = append(out, dto)
		}
	}
	return out, nil
}

func (s *PantryService) load(ctx context.Context, userID, itemID uuid.UUID) (*pantry.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if stderrors.Is(err, pantry.ErrItemNotFound) {
			return nil, errors.NewPantryItemNotFoundError(itemID.String())
		}
		return nil, errors.NewDatabaseError("find pantry item", err)
	}
	if item == nil || item.OwnerID() != userID {
		return nil, errors.NewPantryItemNotFoundError(itemID.String())
	}
	return item, nil
}

func (s *PantryService) toDTOs(items []*pantry.Item) []*inbound.PantryItemDTO {
	out := make([]*inbound.PantryItemDTO, len(items))
	for i, item := range items {
		out[i] = s.toDTO(item)
	}
	return out
}

func (s *PantryService) toDTO(item *pantry.Item) *inbound.PantryItemDTO {
	return s.toDTOWithWindow(item, s.window)
}

func (s *PantryService) toDTOWithWindow(item *pantry.Item, window int) *inbound.PantryItemDTO {
	now := s.now()
	dto := &inbound.PantryItemDTO{
		ID:        item.ID(),
		Name:      item.Name(),
		Quantity:  item.Quantity(),
		Unit:      item.Unit(),
		Category:  item.Category(),
		Location:  item.Location(),
		ExpiresAt: item.ExpiresAt(),
		Status:    item.Status(now, window),
		AddedAt:   item.AddedAt(),
		UpdatedAt: item.UpdatedAt(),
	}
	if days, ok := item.DaysUntilExpiry(now); ok {
		dto.DaysUntilExpiry = &days
	}
	return dto
}

func domainError(err error) error {
	switch {
	case stderrors.Is(err, pantry.ErrItemNotFound):
		return errors.NewAppError(errors.CodePantryItemNotFound, "Pantry item not found", "")
	case stderrors.Is(err, pantry.ErrMissingOwner):
		return errors.NewUnauthorizedError(err.Error())
	default:
		return errors.NewValidationError(err.Error())
	}
}
