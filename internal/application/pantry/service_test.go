package pantry

import (
	"context"
	"testing"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/pantry"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/alchemorsel/kitchen/internal/testutils"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type PantryServiceTestSuite struct {
	suite.Suite
	repo    *testutils.InMemoryPantryRepository
	service *PantryService
	ctx     context.Context
	userID  uuid.UUID
}

func (suite *PantryServiceTestSuite) SetupTest() {
	suite.repo = testutils.NewInMemoryPantryRepository()
	suite.service = NewPantryService(suite.repo, Config{}, zap.NewNop())
	suite.ctx = context.Background()
	suite.userID = uuid.New()
}

func (suite *PantryServiceTestSuite) add(name, quantity string, days *int) *inbound.PantryItemDTO {
	var expires *time.Time
	if days != nil {
		t := time.Now().AddDate(0, 0, *days)
		expires = &t
	}
	dto, err := suite.service.AddItem(suite.ctx, inbound.AddPantryItemCommand{
		UserID:    suite.userID,
		Name:      name,
		Quantity:  quantity,
		Location:  pantry.LocationFridge,
		ExpiresAt: expires,
	})
	suite.Require().NoError(err)
	return dto
}

func (suite *PantryServiceTestSuite) TestAddItem() {
	// Act
	dto := suite.add("  Milk ", "1", testutils.Days(1))

	// Assert
	suite.Equal("Milk", dto.Name)
	suite.Equal(pantry.LocationFridge, dto.Location)
	suite.Equal(pantry.StatusExpiring, dto.Status)
	suite.Require().NotNil(dto.DaysUntilExpiry)
	suite.Equal(1, *dto.DaysUntilExpiry)
}

func (suite *PantryServiceTestSuite) TestAddItemValidation() {
	_, err := suite.service.AddItem(suite.ctx, inbound.AddPantryItemCommand{UserID: suite.userID, Name: " "})

	suite.True(errors.Is(err, errors.CodeValidationFailed))
}

func (suite *PantryServiceTestSuite) TestListExpiringSortedAndWindowed() {
	// Arrange
	suite.add("Yogurt", "1", testutils.Days(2))
	suite.add("Old Cheese", "1", testutils.Days(-3))
	suite.add("Frozen Peas", "1", testutils.Days(30))
	suite.add("Rice", "1", nil)

	// Act
	items, err := suite.service.ListExpiring(suite.ctx, suite.userID, 0)

	// Assert
	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal("Old Cheese", items[0].Name)
	suite.Equal(pantry.StatusExpired, items[0].Status)
	suite.Equal("Yogurt", items[1].Name)
	suite.Equal(pantry.StatusExpiring, items[1].Status)
}

func (suite *PantryServiceTestSuite) TestListExpiringCustomWindow() {
	suite.add("Frozen Peas", "1", testutils.Days(30))

	items, err := suite.service.ListExpiring(suite.ctx, suite.userID, 31)

	suite.Require().NoError(err)
	suite.Len(items, 1)
}

func (suite *PantryServiceTestSuite) TestConsumeItem() {
	// Arrange
	item := suite.add("Eggs", "6", nil)

	// Act
	partial, err := suite.service.ConsumeItem(suite.ctx, suite.userID, item.ID, 2)
	suite.Require().NoError(err)
	_, err = suite.service.ConsumeItem(suite.ctx, suite.userID, item.ID, 4)
	suite.Require().NoError(err)

	// Assert
	suite.Equal("4", partial.Quantity)
	items, err := suite.service.ListItems(suite.ctx, suite.userID, "")
	suite.Require().NoError(err)
	suite.Empty(items)
}

func (suite *PantryServiceTestSuite) TestConsumeNonNumeric() {
	item := suite.add("Flour", "a bag", nil)

	_, err := suite.service.ConsumeItem(suite.ctx, suite.userID, item.ID, 1)

	suite.True(errors.Is(err, errors.CodeValidationFailed))
}

func (suite *PantryServiceTestSuite) TestUpdateItemClearsExpiry() {
	// Arrange
	item := suite.add("Butter", "1", testutils.Days(5))
	location := pantry.LocationFreezer

	// Act
	updated, err := suite.service.UpdateItem(suite.ctx, inbound.UpdatePantryItemCommand{
		UserID:      suite.userID,
		ItemID:      item.ID,
		Location:    &location,
		ClearExpiry: true,
	})

	// Assert
	suite.Require().NoError(err)
	suite.Equal(pantry.LocationFreezer, updated.Location)
	suite.Nil(updated.ExpiresAt)
	suite.Equal(pantry.StatusUnknown, updated.Status)
}

func (suite *PantryServiceTestSuite) TestOtherOwnersItemsAreNotFound() {
	item := suite.add("Butter", "1", nil)

	err := suite.service.RemoveItem(suite.ctx, uuid.New(), item.ID)

	suite.True(errors.Is(err, errors.CodePantryItemNotFound))
}

func (suite *PantryServiceTestSuite) TestListItemsByLocation() {
	suite.add("Butter", "1", nil)

	fridge, err := suite.service.ListItems(suite.ctx, suite.userID, pantry.LocationFridge)
	suite.Require().NoError(err)
	freezer, err := suite.service.ListItems(suite.ctx, suite.userID, pantry.LocationFreezer)
	suite.Require().NoError(err)
	_, err = suite.service.ListItems(suite.ctx, suite.userID, "garage")

	suite.Len(fridge, 1)
	suite.Empty(freezer)
	suite.True(errors.Is(err, errors.CodeValidationFailed))
}

func TestPantryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PantryServiceTestSuite))
}
