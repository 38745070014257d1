// Package catalog holds the static drink menu and option registries.
// Everything here is fixed at compile time; editing the menu means
// editing these tables and redeploying, which is how the shop wants it.
package catalog

import "errors"

// ErrUnknownDrink is returned when a drink name does not exist in the menu.
var ErrUnknownDrink = errors.New("unknown drink")

// Drink is one menu entry with its available cup sizes in millilitres.
// Sizes are strictly increasing.
type Drink struct {
	Name  string
	Sizes []int
}

// Category groups drinks under one menu heading.
type Category struct {
	Name   string
	Drinks []Drink
}

// menu is the full catalog in display order.
var menu = []Category{
	{
		Name: "Классика",
		Drinks: []Drink{
			{Name: "Американо", Sizes: []int{250, 350, 450}},
			{Name: "Капучино", Sizes: []int{250, 350, 450}},
			{Name: "Латте", Sizes: []int{250, 350, 450}},
			{Name: "Флэт уайт", Sizes: []int{250, 350}},
		},
	},
	{
		Name: "Раф",
		Drinks: []Drink{
			{Name: "Раф классический", Sizes: []int{250, 350, 450}},
			{Name: "Раф ванильный", Sizes: []int{250, 350, 450}},
		},
	},
	{
		Name: "Чай",
		Drinks: []Drink{
			{Name: "Чёрный чай", Sizes: []int{350, 450}},
			{Name: "Зелёный чай", Sizes: []int{350, 450}},
			{Name: "Травяной чай", Sizes: []int{350, 450}},
		},
	},
	{
		Name: "Какао",
		Drinks: []Drink{
			{Name: "Какао классическое", Sizes: []int{250, 350, 450}},
		},
	},
}

// milkOptions lists milk variants in display order. The first entry is
// the default that is pre-selected when a milk drink reaches the milk step.
var milkOptions = []string{
	"Коровье",
	"Кокосовое",
	"Миндальное",
	"Фундучное",
	"Банановое",
	"Безлактозное",
	"Овсяное",
}

// addonOptions lists add-on variants in display order.
var addonOptions = []string{
	"Сироп",
	"Маршмеллоу",
}

// milkDrinks classifies which drinks are made with milk and therefore
// require a milk choice during ordering.
var milkDrinks = map[string]bool{
	"Капучино":           true,
	"Латте":              true,
	"Флэт уайт":          true,
	"Раф классический":   true,
	"Раф ванильный":      true,
	"Какао классическое": true,
}

// Categories returns category names in display order.
func Categories() []string {
	names := make([]string, 0, len(menu))
	for _, c := range menu {
		names = append(names, c.Name)
	}
	return names
}

// HasCategory reports whether a category exists in the menu.
func HasCategory(name string) bool {
	for _, c := range menu {
		if c.Name == name {
			return true
		}
	}
	return false
}

// DrinksIn returns the drinks of a category in display order,
// or nil if the category is unknown.
func DrinksIn(category string) []Drink {
	for _, c := range menu {
		if c.Name == category {
			return append([]Drink(nil), c.Drinks...)
		}
	}
	return nil
}

// SizesFor returns the valid cup sizes for a drink, searching the whole
// menu. It fails with ErrUnknownDrink for drinks not on the menu.
func SizesFor(drink string) ([]int, error) {
	for _, c := range menu {
		for _, d := range c.Drinks {
			if d.Name == drink {
				return append([]int(nil), d.Sizes...), nil
			}
		}
	}
	return nil, ErrUnknownDrink
}

// RequiresMilk reports whether a drink is made with milk.
func RequiresMilk(drink string) bool {
	return milkDrinks[drink]
}

// MilkOptions returns the milk variants in display order.
func MilkOptions() []string {
	return append([]string(nil), milkOptions...)
}

// DefaultMilk returns the milk variant pre-selected for milk drinks.
func DefaultMilk() string {
	return milkOptions[0]
}

// AddonOptions returns the add-on variants in display order.
func AddonOptions() []string {
	return append([]string(nil), addonOptions...)
}

// IsMilkOption reports whether a milk variant exists in the registry.
func IsMilkOption(name string) bool {
	for _, m := range milkOptions {
		if m == name {
			return true
		}
	}
	return false
}

// IsAddonOption reports whether an add-on variant exists in the registry.
func IsAddonOption(name string) bool {
	for _, a := range addonOptions {
		if a == name {
			return true
		}
	}
	return false
}
