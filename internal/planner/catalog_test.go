package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogSortsByID(t *testing.T) {
	c := testCatalog()
	foods := c.Foods()
	require.Equal(t, len(testFoods()), len(foods))
	for i := 1; i < len(foods); i++ {
		assert.Less(t, string(foods[i-1].ID), string(foods[i].ID))
	}
}

func TestCatalogLookups(t *testing.T) {
	c := testCatalog()

	f, ok := c.Food("tofu")
	require.True(t, ok)
	assert.Equal(t, "Firm tofu", f.Name)

	_, ok = c.Food("dragonfruit")
	assert.False(t, ok)

	proteins := c.FoodsInCategory(CategoryProtein)
	require.Len(t, proteins, 4)
	for _, p := range proteins {
		assert.Equal(t, CategoryProtein, p.Category)
	}

	lunch := c.TemplatesFor(SlotLunch)
	require.Len(t, lunch, 1)
	assert.Equal(t, TemplateID("tpl-protein-plate"), lunch[0].ID)

	dinner := c.TemplatesFor(SlotDinner)
	assert.Len(t, dinner, 2)
}

func TestCatalogCopiesInput(t *testing.T) {
	foods := testFoods()
	c := NewCatalog(foods, nil)
	foods[0].Name = "scribbled"

	f, ok := c.Food(foods[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "scribbled", f.Name)
}

func TestConstraintsPermits(t *testing.T) {
	c := testCatalog()
	yogurt, _ := c.Food("greek-yogurt")
	salmon, _ := c.Food("salmon")
	rice, _ := c.Food("rice")

	ok, why := Constraints{Diets: []RestrictionTag{TagVegan}}.Permits(yogurt)
	assert.False(t, ok)
	require.NotNil(t, why)
	assert.Equal(t, BlockedByDiet, why.Code)

	ok, why = Constraints{Allergies: []string{"fish"}}.Permits(salmon)
	assert.False(t, ok)
	require.NotNil(t, why)
	assert.Equal(t, BlockedByAllergen, why.Code)

	ok, why = Constraints{Dislikes: []FoodID{"rice"}}.Permits(rice)
	assert.False(t, ok)
	require.NotNil(t, why)
	assert.Equal(t, BlockedByDislike, why.Code)

	ok, why = Constraints{Diets: []RestrictionTag{TagVegan, TagGlutenFree}}.Permits(rice)
	assert.True(t, ok)
	assert.Nil(t, why)
}
