package services

import (
	"testing"
	"time"

	"github.com/sanskarrz/Meal-Tracker/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.FoodEntry{}))
	return db
}

// fakeOracle returns a canned verdict and records what it was asked.
type fakeOracle struct {
	data      *NutritionData
	err       error
	lastImage string
	lastQuery string
	calls     int
}

func (f *fakeOracle) Analyze(imageBase64, textQuery string) (*NutritionData, error) {
	f.calls++
	f.lastImage = imageBase64
	f.lastQuery = textQuery
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func cannedNutrition(name string, calories, protein, carbs, fats float64, serving string, weight int) *NutritionData {
	return &NutritionData{
		FoodName:      name,
		Calories:      &calories,
		Protein:       &protein,
		Carbs:         &carbs,
		Fats:          &fats,
		ServingSize:   serving,
		ServingWeight: weight,
		Confidence:    "high",
	}
}

func seedEntry(t *testing.T, db *gorm.DB, userID uint, name, serving string, weight int, calories float64) *models.FoodEntry {
	t.Helper()
	now := time.Now().UTC()
	entry := &models.FoodEntry{
		UserID:        userID,
		FoodName:      name,
		Calories:      calories,
		Protein:       10,
		Carbs:         30,
		Fats:          5,
		ServingSize:   serving,
		ServingWeight: weight,
		EntryType:     models.EntryTypeManual,
		Timestamp:     now,
		Date:          now.Format("2006-01-02"),
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}
