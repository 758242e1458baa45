package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/sanskarrz/Meal-Tracker/services"
	"github.com/sanskarrz/Meal-Tracker/utils"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	food    *services.FoodService
	serving *services.ServingService
}

func NewFoodController(food *services.FoodService, serving *services.ServingService) *FoodController {
	return &FoodController{food: food, serving: serving}
}

// POST /api/food/search — preview only, nothing is saved.
func (f *FoodController) Search(c *gin.Context) {
	var input struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nutrition, err := f.food.Search(input.Query)
	if err != nil {
		analysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"food_name":      nutrition.FoodName,
		"calories":       services.FloatOr(nutrition.Calories, 0),
		"protein":        services.FloatOr(nutrition.Protein, 0),
		"carbs":          services.FloatOr(nutrition.Carbs, 0),
		"fats":           services.FloatOr(nutrition.Fats, 0),
		"serving_size":   nutrition.ServingSize,
		"serving_weight": nutrition.ServingWeight,
	})
}

// POST /api/food/analyze-image
func (f *FoodController) AnalyzeImage(c *gin.Context) {
	var input struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("userID").(uint)
	entry, confidence, err := f.food.AnalyzeImage(userID, input.ImageBase64)
	if err != nil {
		analysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             entry.ID,
		"food_name":      entry.FoodName,
		"calories":       entry.Calories,
		"protein":        entry.Protein,
		"carbs":          entry.Carbs,
		"fats":           entry.Fats,
		"serving_size":   entry.ServingSize,
		"serving_weight": entry.ServingWeight,
		"confidence":     confidence,
	})
}

// POST /api/food/analyze-recipe
func (f *FoodController) AnalyzeRecipe(c *gin.Context) {
	var input struct {
		RecipeText string `json:"recipe_text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("userID").(uint)
	entry, err := f.food.AnalyzeRecipe(userID, input.RecipeText)
	if err != nil {
		analysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             entry.ID,
		"food_name":      entry.FoodName,
		"calories":       entry.Calories,
		"protein":        entry.Protein,
		"carbs":          entry.Carbs,
		"fats":           entry.Fats,
		"serving_size":   entry.ServingSize,
		"serving_weight": entry.ServingWeight,
	})
}

// POST /api/food/manual
func (f *FoodController) AddManual(c *gin.Context) {
	var input struct {
		FoodName    string `json:"food_name" binding:"required"`
		ServingSize string `json:"serving_size"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("userID").(uint)
	entry, err := f.food.AddManual(userID, input.FoodName, input.ServingSize)
	if err != nil {
		analysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             entry.ID,
		"food_name":      entry.FoodName,
		"calories":       entry.Calories,
		"protein":        entry.Protein,
		"carbs":          entry.Carbs,
		"fats":           entry.Fats,
		"serving_size":   entry.ServingSize,
		"serving_weight": entry.ServingWeight,
	})
}

// GET /api/food/today
func (f *FoodController) Today(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	today := time.Now().UTC().Format("2006-01-02")

	entries, err := f.food.ListByDate(userID, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GET /api/food/history?date=YYYY-MM-DD
func (f *FoodController) History(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	entries, err := f.food.ListByDate(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// PUT /api/food/:id — serving edit, recomputes name and macros.
func (f *FoodController) Update(c *gin.Context) {
	var input struct {
		ServingSize   *string `json:"serving_size"`
		ServingWeight *int    `json:"serving_weight" binding:"omitempty,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("userID").(uint)
	entry, err := f.serving.Rewrite(userID, c.Param("id"), services.ServingUpdate{
		ServingSize:   input.ServingSize,
		ServingWeight: input.ServingWeight,
	})
	if err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Food entry not found"})
			return
		}
		analysisError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No updates provided"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Food entry updated successfully",
		"updated_values": gin.H{
			"food_name":      entry.FoodName,
			"serving_size":   entry.ServingSize,
			"serving_weight": entry.ServingWeight,
			"calories":       entry.Calories,
			"protein":        entry.Protein,
			"carbs":          entry.Carbs,
			"fats":           entry.Fats,
		},
	})
}

// DELETE /api/food/:id
func (f *FoodController) Delete(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	if err := f.food.Delete(userID, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Food entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food entry deleted successfully"})
}

// analysisError maps the analysis-path failure taxonomy onto statuses:
// bad input and oracle-declared non-food are the caller's problem,
// anything else surfaces as a 500 with the underlying message instead of
// crashing the request.
func analysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrInvalidEncoding):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base64 image data. Please try capturing the image again."})
	case errors.Is(err, utils.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "The uploaded data is not a valid image."})
	case errors.Is(err, services.ErrNotFood):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze food item: " + err.Error()})
	}
}
