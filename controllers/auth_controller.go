package controllers

import (
	"errors"
	"net/http"

	"github.com/sanskarrz/Meal-Tracker/config"
	"github.com/sanskarrz/Meal-Tracker/services"
	"github.com/sanskarrz/Meal-Tracker/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	users *services.UserService
	cfg   *config.Config
}

func NewAuthController(users *services.UserService, cfg *config.Config) *AuthController {
	return &AuthController{users: users, cfg: cfg}
}

type RegisterInput struct {
	Username         string `json:"username" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	DailyCalorieGoal *int   `json:"daily_calorie_goal"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.users.Register(input.Username, input.Email, input.Password, input.DailyCalorieGoal)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken),
			errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrGoalOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	token, err := utils.GenerateJWT(user.Username, a.cfg.JWTSecret, a.cfg.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.users.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateJWT(user.Username, a.cfg.JWTSecret, a.cfg.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (a *AuthController) Me(c *gin.Context) {
	user, err := a.users.GetByUsername(c.GetString("username"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":           user.Username,
		"email":              user.Email,
		"daily_calorie_goal": user.DailyCalorieGoal,
	})
}

func (a *AuthController) UpdateGoal(c *gin.Context) {
	var input struct {
		DailyCalorieGoal *int `json:"daily_calorie_goal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid calorie goal value"})
		return
	}

	userID := c.MustGet("userID").(uint)
	if err := a.users.UpdateGoal(userID, *input.DailyCalorieGoal); err != nil {
		switch {
		case errors.Is(err, services.ErrGoalOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update goal"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Daily calorie goal updated successfully",
		"daily_calorie_goal": *input.DailyCalorieGoal,
	})
}
