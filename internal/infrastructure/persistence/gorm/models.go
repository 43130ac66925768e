// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MacrosModel is embedded into recipe tables
type MacrosModel struct {
	Calories float64 `gorm:"default:0"`
	Protein  float64 `gorm:"default:0"`
	Carbs    float64 `gorm:"default:0"`
	Fat      float64 `gorm:"default:0"`
}

// RecipeModel represents the GORM model for library recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Version     int64     `gorm:"default:1"`
	OwnerID     uuid.UUID `gorm:"type:char(36);not null;index:idx_recipes_owner_created,priority:1"`
	Name        string    `gorm:"type:varchar(255);not null;index"`
	Description string    `gorm:"type:text"`
	Servings    int       `gorm:"default:0"`

	// Timing (stored in minutes)
	PrepTimeMinutes int `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int `gorm:"column:cook_time_minutes;default:0"`

	// Recipe details
	Ingredients  IngredientList `gorm:"type:json"`
	Instructions StringSlice    `gorm:"type:json"`
	Macros       MacrosModel    `gorm:"embedded;embeddedPrefix:macro_"`
	Tags         StringSlice    `gorm:"type:json"`

	// Provenance
	SourceURL      string     `gorm:"type:text"`
	RecipeSource   string     `gorm:"type:varchar(255);index"`
	MasterRecipeID *uuid.UUID `gorm:"type:char(36);index"`

	Favorite bool `gorm:"default:false;index"`

	CreatedAt time.Time  `gorm:"index:idx_recipes_owner_created,priority:2"`
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
}

// PantryItemModel represents the GORM model for pantry items
type PantryItemModel struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey"`
	OwnerID   uuid.UUID  `gorm:"type:char(36);not null;index:idx_pantry_owner_expiry,priority:1"`
	Name      string     `gorm:"type:varchar(100);not null"`
	Quantity  string     `gorm:"type:varchar(50)"`
	Unit      string     `gorm:"type:varchar(50)"`
	Category  string     `gorm:"type:varchar(50);index"`
	Location  string     `gorm:"type:varchar(20);not null;default:'pantry'"`
	ExpiresAt *time.Time `gorm:"index:idx_pantry_owner_expiry,priority:2"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MasterRecipeModel represents the GORM model for catalog entries
type MasterRecipeModel struct {
	ID              uuid.UUID      `gorm:"type:char(36);primaryKey"`
	Name            string         `gorm:"type:varchar(255);not null;index"`
	Description     string         `gorm:"type:text"`
	Cuisine         string         `gorm:"type:varchar(50);index"`
	Tags            StringSlice    `gorm:"type:json"`
	Servings        int            `gorm:"default:0"`
	PrepTimeMinutes int            `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int            `gorm:"column:cook_time_minutes;default:0"`
	Ingredients     IngredientList `gorm:"type:json"`
	Instructions    StringSlice    `gorm:"type:json"`
	Macros          MacrosModel    `gorm:"embedded;embeddedPrefix:macro_"`
	SourceURL       string         `gorm:"type:text"`
	RecipeSource    string         `gorm:"type:varchar(255)"`
	ImageURL        string         `gorm:"type:text"`
	CreatedAt       time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// IngredientList stores normalized ingredients as a JSON array
type IngredientList []measurement.NormalizedIngredient

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}
}

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for PantryItemModel
func (p *PantryItemModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MasterRecipeModel
func (m *MasterRecipeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (PantryItemModel) TableName() string {
	return "pantry_items"
}

func (MasterRecipeModel) TableName() string {
	return "master_recipes"
}

// AllModels lists every model for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&RecipeModel{},
		&PantryItemModel{},
		&MasterRecipeModel{},
	}
}
