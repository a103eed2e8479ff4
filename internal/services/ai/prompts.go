package ai

import (
	"fmt"
	"strings"

	"github.com/socialchef/leftovers/internal/ingredient"
)

const recipePreamble = "Create a simple, delicious recipe using these ingredients. You may add a few items or omit ones that do not pair well:"

const recipeClosing = "Include: title, ingredient list with quantities, numbered step-by-step instructions, and estimated total time."

const imageTemplate = "A high-quality, appetizing photo of %s on a plate, realistic style."

// DefaultDishTitle is used when the recipe text is empty.
const DefaultDishTitle = "Dish"

// BuildRecipePrompt renders the ingredient list into the recipe request.
// Each record becomes "- {quantity} {unit} {item}" with blank fields kept, so
// a record without a unit renders as "- 2  eggs".
func BuildRecipePrompt(ingredients ingredient.List) string {
	var sb strings.Builder
	sb.WriteString(recipePreamble)
	sb.WriteString("\n")
	for _, ing := range ingredients {
		sb.WriteString(IngredientLine(ing))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(recipeClosing)
	return sb.String()
}

// IngredientLine formats one record as a prompt bullet.
func IngredientLine(ing ingredient.Record) string {
	return fmt.Sprintf("- %s %s %s", ing.Quantity, ing.Unit, ing.Item)
}

// BuildImagePrompt asks for a photo of the named dish.
func BuildImagePrompt(dishTitle string) string {
	return fmt.Sprintf(imageTemplate, dishTitle)
}

// DishTitle is the first line of the recipe text, trimmed.
func DishTitle(recipe string) string {
	if recipe == "" {
		return DefaultDishTitle
	}
	first, _, _ := strings.Cut(recipe, "\n")
	return strings.TrimSpace(first)
}
