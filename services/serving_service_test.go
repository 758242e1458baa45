package services

import (
	"testing"

	"github.com/sanskarrz/Meal-Tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intptr(v int) *int       { return &v }
func strptr(v string) *string { return &v }

func TestRewriteWeightOnly(t *testing.T) {
	db := newTestDB(t)
	oracle := &fakeOracle{data: cannedNutrition("Rice Bowl", 140, 2.8, 28, 1.2, "1 bowl (100g)", 100)}
	serving := NewServingService(db, oracle)

	entry := seedEntry(t, db, 3, "Rice Bowl (approx. 250g)", "1 bowl (250g)", 250, 350)

	updated, err := serving.Rewrite(3, entry.ID, ServingUpdate{ServingWeight: intptr(100)})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, 100, updated.ServingWeight)
	assert.Equal(t, "1 bowl (100g)", updated.ServingSize)
	assert.Contains(t, updated.FoodName, "100g")
	assert.NotContains(t, updated.FoodName, "250g")
	assert.Equal(t, 140.0, updated.Calories)

	// Macros were recomputed for the new serving, not rescaled.
	assert.Contains(t, oracle.lastQuery, "Rice Bowl")
	assert.Contains(t, oracle.lastQuery, "100g")

	var stored models.FoodEntry
	require.NoError(t, db.First(&stored, "id = ?", entry.ID).Error)
	assert.Equal(t, updated.FoodName, stored.FoodName)
	assert.Equal(t, 100, stored.ServingWeight)
}

func TestRewriteDescriptionOnly(t *testing.T) {
	db := newTestDB(t)
	oracle := &fakeOracle{data: cannedNutrition("Rice Bowl", 490, 9.8, 98, 4.2, "1 bowl (350g)", 350)}
	serving := NewServingService(db, oracle)

	entry := seedEntry(t, db, 3, "Rice Bowl (approx. 250g)", "1 bowl (250g)", 250, 350)

	updated, err := serving.Rewrite(3, entry.ID, ServingUpdate{ServingSize: strptr("1 big bowl (350g)")})
	require.NoError(t, err)

	// A gram quantity in the new description also fixes the numeric weight.
	assert.Equal(t, 350, updated.ServingWeight)
	assert.Equal(t, "1 big bowl (350g)", updated.ServingSize)
	assert.Equal(t, "Rice Bowl 1 big bowl (350g)", updated.FoodName)
}

func TestRewriteDescriptionWithoutWeight(t *testing.T) {
	db := newTestDB(t)
	oracle := &fakeOracle{data: cannedNutrition("Rice Bowl", 350, 7, 70, 3, "1 bowl", 250)}
	serving := NewServingService(db, oracle)

	entry := seedEntry(t, db, 3, "Rice Bowl (approx. 250g)", "1 bowl (250g)", 250, 350)

	updated, err := serving.Rewrite(3, entry.ID, ServingUpdate{ServingSize: strptr("1 bowl")})
	require.NoError(t, err)

	// No grams anywhere in the edit, so the recorded weight stands and the
	// name restates it.
	assert.Equal(t, 250, updated.ServingWeight)
	assert.Equal(t, "1 bowl", updated.ServingSize)
	assert.Equal(t, "Rice Bowl (approx. 250g)", updated.FoodName)
}

func TestRewriteBothFields(t *testing.T) {
	db := newTestDB(t)
	oracle := &fakeOracle{data: cannedNutrition("Rice Bowl", 210, 4.2, 42, 1.8, "small bowl (150g)", 150)}
	serving := NewServingService(db, oracle)

	entry := seedEntry(t, db, 3, "Rice Bowl (approx. 250g)", "1 bowl (250g)", 250, 350)

	updated, err := serving.Rewrite(3, entry.ID, ServingUpdate{
		ServingSize:   strptr("small bowl (140g)"),
		ServingWeight: intptr(150),
	})
	require.NoError(t, err)

	// An explicit weight wins over the grams in the description text.
	assert.Equal(t, 150, updated.ServingWeight)
	assert.Equal(t, "small bowl (140g)", updated.ServingSize)
}

func TestRewriteNoOp(t *testing.T) {
	db := newTestDB(t)
	oracle := &fakeOracle{}
	serving := NewServingService(db, oracle)

	entry := seedEntry(t, db, 3, "Rice Bowl", "1 bowl (250g)", 250, 350)

	updated, err := serving.Rewrite(3, entry.ID, ServingUpdate{})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Zero(t, oracle.calls)
}

func TestRewriteOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	serving := NewServingService(db, &fakeOracle{})

	entry := seedEntry(t, db, 3, "Rice Bowl", "1 bowl (250g)", 250, 350)

	_, err := serving.Rewrite(4, entry.ID, ServingUpdate{ServingWeight: intptr(100)})
	assert.ErrorIs(t, err, ErrEntryNotFound)

	var stored models.FoodEntry
	require.NoError(t, db.First(&stored, "id = ?", entry.ID).Error)
	assert.Equal(t, 250, stored.ServingWeight)
}

func TestRewriteMissingEntry(t *testing.T) {
	serving := NewServingService(newTestDB(t), &fakeOracle{})
	_, err := serving.Rewrite(3, "no-such-id", ServingUpdate{ServingWeight: intptr(100)})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestRewriteOracleFailurePreservesEntry(t *testing.T) {
	db := newTestDB(t)
	serving := NewServingService(db, &fakeOracle{err: assert.AnError})

	entry := seedEntry(t, db, 3, "Rice Bowl (approx. 250g)", "1 bowl (250g)", 250, 350)

	_, err := serving.Rewrite(3, entry.ID, ServingUpdate{ServingWeight: intptr(100)})
	assert.Error(t, err)

	var stored models.FoodEntry
	require.NoError(t, db.First(&stored, "id = ?", entry.ID).Error)
	assert.Equal(t, "Rice Bowl (approx. 250g)", stored.FoodName)
	assert.Equal(t, 250, stored.ServingWeight)
}

func TestRewriteMacroFallbackToPriorValues(t *testing.T) {
	db := newTestDB(t)
	// Oracle replies with a name but no macros; the prior values stand.
	oracle := &fakeOracle{data: &NutritionData{
		FoodName:      "Rice Bowl",
		ServingSize:   "1 bowl (100g)",
		ServingWeight: 100,
		Confidence:    "low",
	}}
	serving := NewServingService(db, oracle)

	entry := seedEntry(t, db, 3, "Rice Bowl (approx. 250g)", "1 bowl (250g)", 250, 350)

	updated, err := serving.Rewrite(3, entry.ID, ServingUpdate{ServingWeight: intptr(100)})
	require.NoError(t, err)
	assert.Equal(t, 350.0, updated.Calories)
	assert.Equal(t, 10.0, updated.Protein)
}
