package services

import (
	"errors"
	"fmt"

	"github.com/sanskarrz/Meal-Tracker/models"
	"github.com/sanskarrz/Meal-Tracker/utils"

	"gorm.io/gorm"
)

// ServingUpdate is a partial edit: either field may be absent.
type ServingUpdate struct {
	ServingSize   *string
	ServingWeight *int
}

func (u ServingUpdate) empty() bool {
	return u.ServingSize == nil && u.ServingWeight == nil
}

// ServingService implements the edit-and-recompute flow: change an entry's
// serving and regenerate its name, description, and macros together so
// they can never reference different weights.
type ServingService struct {
	db     *gorm.DB
	oracle NutritionOracle
}

func NewServingService(db *gorm.DB, oracle NutritionOracle) *ServingService {
	return &ServingService{db: db, oracle: oracle}
}

// Rewrite applies a serving edit to the entry owned by userID. It returns
// the updated entry, or (nil, nil) when the edit carries no serving fields
// and is acknowledged as a no-op. Macros come from a fresh oracle call for
// the new serving, never from linear rescaling: composite dishes with
// fixed-size components do not scale linearly.
func (s *ServingService) Rewrite(userID uint, entryID string, upd ServingUpdate) (*models.FoodEntry, error) {
	if upd.empty() {
		return nil, nil
	}

	var entry models.FoodEntry
	err := s.db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	base := utils.BaseFoodName(entry.FoodName)
	if base == "" {
		base = "Unknown Food"
	}

	// Effective weight: caller-supplied, else a gram quantity inside a
	// caller-supplied description, else whatever is recorded.
	weight := entry.ServingWeight
	switch {
	case upd.ServingWeight != nil:
		weight = *upd.ServingWeight
	case upd.ServingSize != nil:
		if g, found := utils.ExtractGramWeight(*upd.ServingSize); found {
			weight = g
		}
	}
	if weight <= 0 {
		weight = 100
	}

	// Effective description: caller-supplied, else the recorded one with
	// any stale gram token rewritten to the new weight.
	var serving string
	if upd.ServingSize != nil {
		serving = *upd.ServingSize
	} else {
		serving = utils.ReplaceGramWeight(entry.ServingSize, weight)
		if serving == "" {
			serving = fmt.Sprintf("approx. %dg", weight)
		}
	}

	// The displayed name always restates the serving, so name and weight
	// cannot diverge after a rewrite.
	var name string
	if utils.HasGramToken(serving) {
		name = base + " " + serving
	} else {
		name = fmt.Sprintf("%s (approx. %dg)", base, weight)
	}

	nutrition, err := s.oracle.Analyze("", "Provide accurate nutrition for "+name+" for Indian market.")
	if err != nil {
		return nil, err
	}

	entry.FoodName = name
	entry.ServingSize = serving
	entry.ServingWeight = weight
	entry.Calories = FloatOr(nutrition.Calories, entry.Calories)
	entry.Protein = FloatOr(nutrition.Protein, entry.Protein)
	entry.Carbs = FloatOr(nutrition.Carbs, entry.Carbs)
	entry.Fats = FloatOr(nutrition.Fats, entry.Fats)

	res := s.db.Model(&models.FoodEntry{}).
		Where("id = ? AND user_id = ?", entry.ID, userID).
		Updates(map[string]interface{}{
			"food_name":      entry.FoodName,
			"serving_size":   entry.ServingSize,
			"serving_weight": entry.ServingWeight,
			"calories":       entry.Calories,
			"protein":        entry.Protein,
			"carbs":          entry.Carbs,
			"fats":           entry.Fats,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrEntryNotFound
	}

	return &entry, nil
}
