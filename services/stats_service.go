package services

import (
	"github.com/sanskarrz/Meal-Tracker/models"

	"gorm.io/gorm"
)

// DailyStats is one day's totals folded against the user's goal.
type DailyStats struct {
	Date              string  `json:"date"`
	TotalCalories     float64 `json:"total_calories"`
	TotalProtein      float64 `json:"total_protein"`
	TotalCarbs        float64 `json:"total_carbs"`
	TotalFats         float64 `json:"total_fats"`
	EntriesCount      int     `json:"entries_count"`
	DailyGoal         int     `json:"daily_goal"`
	RemainingCalories float64 `json:"remaining_calories"`
	Percentage        float64 `json:"percentage"`
}

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// Daily sums a user's entries for the given date against their goal.
func (s *StatsService) Daily(userID uint, date string, dailyGoal int) (*DailyStats, error) {
	var entries []models.FoodEntry
	if err := s.db.Where("user_id = ? AND date = ?", userID, date).Find(&entries).Error; err != nil {
		return nil, err
	}

	stats := &DailyStats{
		Date:         date,
		EntriesCount: len(entries),
		DailyGoal:    dailyGoal,
	}
	for _, e := range entries {
		stats.TotalCalories += e.Calories
		stats.TotalProtein += e.Protein
		stats.TotalCarbs += e.Carbs
		stats.TotalFats += e.Fats
	}

	stats.RemainingCalories = float64(dailyGoal) - stats.TotalCalories
	if dailyGoal > 0 {
		stats.Percentage = stats.TotalCalories / float64(dailyGoal) * 100
	}

	return stats, nil
}
