package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry types. Search previews are never persisted, so they have no type.
const (
	EntryTypeCamera = "camera"
	EntryTypeManual = "manual"
	EntryTypeRecipe = "recipe"
)

// FoodEntry is one logged food record. Calories and macros always describe
// the currently recorded serving; the serving rewrite replaces them together
// with the name and serving fields so they can never drift apart.
type FoodEntry struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        uint      `gorm:"index:idx_entries_user_date;not null" json:"user_id"`
	FoodName      string    `gorm:"not null" json:"food_name"`
	Calories      float64   `json:"calories"`
	Protein       float64   `json:"protein"`
	Carbs         float64   `json:"carbs"`
	Fats          float64   `json:"fats"`
	ServingSize   string    `json:"serving_size"`
	ServingWeight int       `json:"serving_weight"`
	EntryType     string    `gorm:"type:varchar(16);not null" json:"entry_type"`
	ImageBase64   string    `gorm:"type:text" json:"image_base64,omitempty"`
	RecipeText    string    `gorm:"type:text" json:"recipe_text,omitempty"`
	Timestamp     time.Time `gorm:"not null" json:"timestamp"`
	Date          string    `gorm:"type:varchar(10);index:idx_entries_user_date;not null" json:"date"`
}

func (e *FoodEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
