package entity

import (
	"strings"
	"time"
)

// Recipe stores ingredients comma separated and steps newline separated.
type Recipe struct {
	ID          uint
	ChefID      uint
	ChefName    string
	RecipeName  string
	Cuisine     string
	RecipeImage string
	Ingredients string
	Steps       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r *Recipe) IngredientList() []string {
	return SplitList(r.Ingredients, ",")
}

func (r *Recipe) StepList() []string {
	return SplitList(strings.ReplaceAll(r.Steps, "\r\n", "\n"), "\n")
}

// SplitList splits on sep, trims each entry and drops empty ones.
func SplitList(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type RecipeReview struct {
	ID           uint
	RecipeID     uint
	UserID       uint
	ReviewerName string
	Rating       int
	Comment      string
	ReviewDate   time.Time
}

type RecipeFilter struct {
	Cuisine string
	ChefID  uint
}
