package planner

import "sort"

// Catalog is an immutable, indexed view of the food catalog for the duration
// of a planning request. Construct it once from persisted rows and share it
// freely across requests; the engine never mutates it and selected meals
// reference foods by id only.
type Catalog struct {
	foods      []FoodItem
	templates  []MealTemplate
	byID       map[FoodID]int
	byCategory map[FoodCategory][]int
}

// NewCatalog builds a catalog handle. Input slices are copied and sorted by
// id so that iteration order, and therefore solver output, is deterministic
// regardless of the order rows arrive from storage.
func NewCatalog(foods []FoodItem, templates []MealTemplate) *Catalog {
	c := &Catalog{
		foods:      make([]FoodItem, len(foods)),
		templates:  make([]MealTemplate, len(templates)),
		byID:       make(map[FoodID]int, len(foods)),
		byCategory: make(map[FoodCategory][]int),
	}
	copy(c.foods, foods)
	copy(c.templates, templates)

	sort.Slice(c.foods, func(i, j int) bool { return c.foods[i].ID < c.foods[j].ID })
	sort.Slice(c.templates, func(i, j int) bool { return c.templates[i].ID < c.templates[j].ID })

	for i, f := range c.foods {
		c.byID[f.ID] = i
		c.byCategory[f.Category] = append(c.byCategory[f.Category], i)
	}
	return c
}

// Food looks up an item by id.
func (c *Catalog) Food(id FoodID) (FoodItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return FoodItem{}, false
	}
	return c.foods[i], true
}

// Foods returns all items ordered by id.
func (c *Catalog) Foods() []FoodItem {
	out := make([]FoodItem, len(c.foods))
	copy(out, c.foods)
	return out
}

// FoodsInCategory returns the items of one category ordered by id.
func (c *Catalog) FoodsInCategory(cat FoodCategory) []FoodItem {
	idx := c.byCategory[cat]
	out := make([]FoodItem, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.foods[i])
	}
	return out
}

// TemplatesFor returns the templates serving a slot purpose, ordered by id.
func (c *Catalog) TemplatesFor(p SlotPurpose) []MealTemplate {
	var out []MealTemplate
	for _, t := range c.templates {
		if t.servesPurpose(p) {
			out = append(out, t)
		}
	}
	return out
}

// NumFoods reports the catalog size.
func (c *Catalog) NumFoods() int { return len(c.foods) }

// NumTemplates reports how many templates the catalog carries.
func (c *Catalog) NumTemplates() int { return len(c.templates) }
