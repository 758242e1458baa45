package services

import (
	"errors"

	"github.com/sanskarrz/Meal-Tracker/models"
	"github.com/sanskarrz/Meal-Tracker/utils"

	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrGoalOutOfRange     = errors.New("calorie goal must be between 500 and 10000")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	MinDailyCalorieGoal     = 500
	MaxDailyCalorieGoal     = 10000
	DefaultDailyCalorieGoal = 2000
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new account. A nil goal falls back to the default
// 2000 kcal; a supplied goal must be inside the allowed bounds.
func (s *UserService) Register(username, email, password string, dailyGoal *int) (*models.User, error) {
	goal := DefaultDailyCalorieGoal
	if dailyGoal != nil {
		if *dailyGoal < MinDailyCalorieGoal || *dailyGoal > MaxDailyCalorieGoal {
			return nil, ErrGoalOutOfRange
		}
		goal = *dailyGoal
	}

	var existing models.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:         username,
		Email:            email,
		PasswordHash:     hashed,
		DailyCalorieGoal: goal,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateGoal changes the one mutable user field.
func (s *UserService) UpdateGoal(userID uint, goal int) error {
	if goal < MinDailyCalorieGoal || goal > MaxDailyCalorieGoal {
		return ErrGoalOutOfRange
	}

	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("daily_calorie_goal", goal)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
