package services

import (
	"errors"
	"time"

	"github.com/sanskarrz/Meal-Tracker/models"
	"github.com/sanskarrz/Meal-Tracker/utils"

	"gorm.io/gorm"
)

var ErrEntryNotFound = errors.New("food entry not found")

// NutritionOracle is the slice of the oracle client the food paths need.
type NutritionOracle interface {
	Analyze(imageBase64, textQuery string) (*NutritionData, error)
}

// FoodService owns the four write paths (camera, manual, recipe, and the
// non-persisting search preview) plus reads and deletes of entries.
type FoodService struct {
	db     *gorm.DB
	oracle NutritionOracle
}

func NewFoodService(db *gorm.DB, oracle NutritionOracle) *FoodService {
	return &FoodService{db: db, oracle: oracle}
}

// Search returns a nutrition preview without saving anything.
func (s *FoodService) Search(query string) (*NutritionData, error) {
	return s.oracle.Analyze("", query)
}

// AnalyzeImage normalizes the submitted image, runs inference on it, and
// persists a camera entry. The stored payload is the canonical re-encoded
// image, not the raw upload.
func (s *FoodService) AnalyzeImage(userID uint, rawImage string) (*models.FoodEntry, string, error) {
	canonical, err := utils.NormalizeBase64Image(rawImage)
	if err != nil {
		return nil, "", err
	}

	nutrition, err := s.oracle.Analyze(canonical, "")
	if err != nil {
		return nil, "", err
	}

	entry := s.newEntry(userID, nutrition)
	entry.EntryType = models.EntryTypeCamera
	entry.ImageBase64 = canonical

	if err := s.db.Create(entry).Error; err != nil {
		return nil, "", err
	}
	return entry, nutrition.Confidence, nil
}

// AnalyzeRecipe estimates the total nutrition of a free-text recipe and
// persists it as one recipe entry.
func (s *FoodService) AnalyzeRecipe(userID uint, recipeText string) (*models.FoodEntry, error) {
	query := "Analyze this recipe and provide total nutritional information: " + recipeText

	nutrition, err := s.oracle.Analyze("", query)
	if err != nil {
		return nil, err
	}

	entry := s.newEntry(userID, nutrition)
	entry.EntryType = models.EntryTypeRecipe
	entry.RecipeText = recipeText

	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// AddManual looks up nutrition for a named food. A caller-supplied serving
// description wins over the oracle's suggestion, and a gram quantity inside
// it also fixes the numeric serving weight.
func (s *FoodService) AddManual(userID uint, foodName, servingSize string) (*models.FoodEntry, error) {
	query := foodName
	if servingSize != "" {
		query = foodName + ", serving size: " + servingSize
	}

	nutrition, err := s.oracle.Analyze("", query)
	if err != nil {
		return nil, err
	}

	entry := s.newEntry(userID, nutrition)
	entry.EntryType = models.EntryTypeManual
	if servingSize != "" {
		entry.ServingSize = servingSize
		if g, found := utils.ExtractGramWeight(servingSize); found {
			entry.ServingWeight = g
		}
	}

	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByDate returns a user's entries for one calendar date, newest first.
func (s *FoodService) ListByDate(userID uint, date string) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := s.db.
		Where("user_id = ? AND date = ?", userID, date).
		Order("timestamp DESC").
		Find(&entries).Error
	return entries, err
}

// Delete removes an entry owned by the caller. Entries owned by someone
// else are indistinguishable from missing ones.
func (s *FoodService) Delete(userID uint, entryID string) error {
	res := s.db.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.FoodEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *FoodService) newEntry(userID uint, n *NutritionData) *models.FoodEntry {
	now := time.Now().UTC()
	return &models.FoodEntry{
		UserID:        userID,
		FoodName:      n.FoodName,
		Calories:      FloatOr(n.Calories, 0),
		Protein:       FloatOr(n.Protein, 0),
		Carbs:         FloatOr(n.Carbs, 0),
		Fats:          FloatOr(n.Fats, 0),
		ServingSize:   n.ServingSize,
		ServingWeight: n.ServingWeight,
		Timestamp:     now,
		Date:          now.Format("2006-01-02"),
	}
}
