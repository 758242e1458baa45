package controllers

import (
	"net/http"
	"time"

	"github.com/sanskarrz/Meal-Tracker/services"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	stats *services.StatsService
	users *services.UserService
}

func NewStatsController(stats *services.StatsService, users *services.UserService) *StatsController {
	return &StatsController{stats: stats, users: users}
}

// GET /api/stats/daily?date=YYYY-MM-DD
func (s *StatsController) Daily(c *gin.Context) {
	user, err := s.users.GetByUsername(c.GetString("username"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	stats, err := s.stats.Daily(user.ID, date, user.DailyCalorieGoal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
