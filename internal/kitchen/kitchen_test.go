package kitchen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialchef/leftovers/internal/ingredient"
	"github.com/socialchef/leftovers/internal/services/image"
)

type fakeRecipes struct {
	text  string
	calls []ingredient.List
}

func (f *fakeRecipes) GenerateRecipe(ctx context.Context, ingredients ingredient.List) string {
	f.calls = append(f.calls, ingredients)
	return f.text
}

type fakeImages struct {
	img    *image.Image
	notify string
	titles []string
}

func (f *fakeImages) GenerateImage(ctx context.Context, dishTitle string, notifier image.Notifier) *image.Image {
	f.titles = append(f.titles, dishTitle)
	if f.notify != "" {
		notifier.Notify(f.notify)
	}
	return f.img
}

func recordTransitions() (*[]string, Observer) {
	var seen []string
	return &seen, ObserverFunc(func(from, to State) {
		seen = append(seen, to.String())
	})
}

func TestGenerate_Success(t *testing.T) {
	recipes := &fakeRecipes{text: "Eggy Toast\n1. Whisk eggs.\n2. Soak bread."}
	images := &fakeImages{img: &image.Image{Format: "png", Width: 1, Height: 1}}
	seen, observer := recordTransitions()
	k := New(recipes, images, WithObserver(observer))

	s := NewSession("s1")
	require.NoError(t, s.UpdateIngredient(0, ingredient.FieldItem, "eggs"))
	require.NoError(t, s.UpdateIngredient(0, ingredient.FieldQuantity, "2"))
	s.AddIngredient()
	require.NoError(t, s.UpdateIngredient(1, ingredient.FieldItem, "bread"))
	require.NoError(t, s.UpdateIngredient(1, ingredient.FieldQuantity, "1"))
	require.NoError(t, s.UpdateIngredient(1, ingredient.FieldUnit, "slice"))

	out := k.Generate(context.Background(), s)

	assert.True(t, out.Generated)
	assert.Equal(t, "Eggy Toast", out.DishTitle)
	assert.Equal(t, recipes.text, out.Recipe)
	assert.NotNil(t, out.Image)
	assert.Empty(t, out.Warning)
	assert.Empty(t, out.Notices)
	assert.Equal(t, StateDisplaying, out.State)
	assert.Equal(t, StateIdle, s.State)
	assert.Same(t, out, s.Outcome)
	assert.Equal(t, []string{"Eggy Toast"}, images.titles)
	assert.Equal(t, []string{"Validating", "GeneratingRecipe", "GeneratingImage", "Displaying", "Idle"}, *seen)
}

func TestGenerate_BlankListMakesNoCalls(t *testing.T) {
	recipes := &fakeRecipes{text: "never"}
	images := &fakeImages{}
	seen, observer := recordTransitions()
	k := New(recipes, images, WithObserver(observer))

	s := NewSession("s1")
	assert.False(t, s.CanGenerate())

	out := k.Generate(context.Background(), s)

	assert.False(t, out.Generated)
	assert.NotEmpty(t, out.Warning)
	assert.Equal(t, StateIdle, s.State)
	assert.Empty(t, recipes.calls)
	assert.Empty(t, images.titles)
	assert.Equal(t, []string{"Validating", "Idle"}, *seen)
}

func TestGenerate_UnfilledRowWarns(t *testing.T) {
	recipes := &fakeRecipes{text: "never"}
	images := &fakeImages{}
	k := New(recipes, images)

	s := NewSession("s1")
	require.NoError(t, s.UpdateIngredient(0, ingredient.FieldItem, "rice"))
	s.AddIngredient()
	assert.True(t, s.CanGenerate())

	out := k.Generate(context.Background(), s)

	assert.Equal(t, WarningFillAllItems, out.Warning)
	assert.False(t, out.Generated)
	assert.Empty(t, recipes.calls)
	assert.Empty(t, images.titles)
}

func TestGenerate_WhitespaceItemPassesSubmitCheck(t *testing.T) {
	recipes := &fakeRecipes{text: "Rice Bowl"}
	images := &fakeImages{}
	k := New(recipes, images)

	s := NewSession("s1")
	s.Ingredients = ingredient.List{{Item: "rice"}, {Item: "  "}}

	out := k.Generate(context.Background(), s)

	assert.True(t, out.Generated)
	assert.Len(t, recipes.calls, 1)
}

func TestGenerate_RecipeErrorFlowsIntoImage(t *testing.T) {
	marker := "❌ Error generating recipe: Grok API error (status 500): boom"
	recipes := &fakeRecipes{text: marker}
	images := &fakeImages{notify: "❌ Error generating image: bad prompt"}
	k := New(recipes, images)

	s := NewSession("s1")
	s.Ingredients = ingredient.List{{Item: "eggs"}}

	out := k.Generate(context.Background(), s)

	assert.True(t, out.Generated)
	assert.Equal(t, marker, out.DishTitle)
	assert.Equal(t, []string{marker}, images.titles)
	assert.Nil(t, out.Image)
	assert.Equal(t, Notices{"❌ Error generating image: bad prompt"}, out.Notices)
	assert.Equal(t, StateIdle, s.State)
}

func TestGenerate_EmptyRecipeUsesDefaultTitle(t *testing.T) {
	images := &fakeImages{}
	k := New(&fakeRecipes{text: ""}, images)

	s := NewSession("s1")
	s.Ingredients = ingredient.List{{Item: "eggs"}}

	out := k.Generate(context.Background(), s)

	assert.Equal(t, "Dish", out.DishTitle)
	assert.Equal(t, []string{"Dish"}, images.titles)
}

func TestGenerate_OutcomeIsReplaced(t *testing.T) {
	k := New(&fakeRecipes{text: "Soup"}, &fakeImages{notify: "❌ Error generating image: x"})

	s := NewSession("s1")
	s.Ingredients = ingredient.List{{Item: "leeks"}}

	first := k.Generate(context.Background(), s)
	second := k.Generate(context.Background(), s)

	assert.NotSame(t, first, second)
	assert.Len(t, second.Notices, 1)
	assert.Same(t, second, s.Outcome)
}

func TestSessionEditing(t *testing.T) {
	s := NewSession("s1")
	s.AddIngredient()
	require.Len(t, s.Ingredients, 2)

	require.NoError(t, s.RemoveIngredient(0))
	require.NoError(t, s.RemoveIngredient(0))
	assert.Empty(t, s.Ingredients)
	assert.False(t, s.CanGenerate())
	assert.Error(t, s.RemoveIngredient(0))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "GeneratingRecipe", StateGeneratingRecipe.String())
	assert.Equal(t, "Unknown", State(42).String())
}
