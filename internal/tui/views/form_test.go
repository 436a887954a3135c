package views

import (
	"context"
	"errors"
	"testing"

	"github.com/asteroid-belt/dishdeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published []models.Dish
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, d models.Dish) (*models.Dish, error) {
	if p.err != nil {
		return nil, p.err
	}
	d.ID = "remote-1"
	d.Privacy = models.PrivacyPublic
	p.published = append(p.published, d)
	return &d, nil
}

type fakeImporter struct {
	dish *models.Dish
	err  error
	urls []string
}

func (i *fakeImporter) Import(_ context.Context, rawURL string) (*models.Dish, error) {
	i.urls = append(i.urls, rawURL)
	return i.dish, i.err
}

func TestFormView_RequiresTitle(t *testing.T) {
	fv := NewFormView(newTestLibrary(t), nil, nil)

	cmd := fv.Update(SubmitRequestedMsg{})
	assert.Nil(t, cmd)
	assert.Equal(t, "This field is required", fv.Errors()["title"])
}

func TestFormView_RatingRange(t *testing.T) {
	fv := NewFormView(newTestLibrary(t), nil, nil)
	fv.inputs[fieldTitle].SetValue("Pad Thai")

	fv.inputs[fieldRating].SetValue("11")
	assert.Nil(t, fv.Update(SubmitRequestedMsg{}))
	assert.Equal(t, "Must be between 0 and 10", fv.Errors()["rating"])

	fv.inputs[fieldRating].SetValue("great")
	assert.Nil(t, fv.Update(SubmitRequestedMsg{}))
	assert.Equal(t, "Must be a number", fv.Errors()["rating"])
}

func TestFormView_RejectsBadURL(t *testing.T) {
	fv := NewFormView(newTestLibrary(t), nil, nil)
	fv.inputs[fieldTitle].SetValue("Pad Thai")
	fv.inputs[fieldURL].SetValue("not a url")

	assert.Nil(t, fv.Update(SubmitRequestedMsg{}))
	assert.Equal(t, "Invalid URL", fv.Errors()["originalurl"])
}

func TestFormView_SubmitPrivate(t *testing.T) {
	lib := newTestLibrary(t)
	fv := NewFormView(lib, nil, nil)
	fv.inputs[fieldTitle].SetValue("  Pad Thai ")
	fv.inputs[fieldTags].SetValue("Thai, Quick, thai")
	fv.inputs[fieldRating].SetValue("8.5")
	fv.areas[fieldIngredients].SetValue("2 cups rice noodles\na pinch of salt\n\n")
	fv.areas[fieldDirections].SetValue("Soak the noodles.\nFry everything.")

	cmd := fv.Update(SubmitRequestedMsg{})
	require.NotNil(t, cmd)
	assert.Empty(t, fv.Errors())
	assert.Nil(t, fv.Update(SubmitRequestedMsg{}), "busy while the first submit runs")

	msg, ok := cmd().(RecipeSubmittedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, models.PrivacyPrivate, msg.Privacy)
	assert.False(t, msg.Edited)

	dishes, err := lib.List(context.Background())
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	d := dishes[0]
	assert.Equal(t, "Pad Thai", d.Title)
	assert.Equal(t, []string{"thai", "quick"}, d.Tags)
	require.NotNil(t, d.Rating)
	assert.InDelta(t, 8.5, *d.Rating, 0.001)
	require.Len(t, d.Ingredients, 2)
	assert.Equal(t, models.StructuredIngredient("rice noodles", "2", "cups"), d.Ingredients[0])
	assert.Equal(t, models.RawIngredient("a pinch of salt"), d.Ingredients[1])
	assert.Len(t, d.Directions, 2)

	fv.Update(msg)
	assert.Empty(t, fv.Value(fieldTitle), "form resets after a save")
}

func TestFormView_SubmitPublicWithoutServer(t *testing.T) {
	fv := NewFormView(newTestLibrary(t), nil, nil)
	fv.inputs[fieldTitle].SetValue("Pad Thai")
	fv.isPublic = true

	cmd := fv.Update(SubmitRequestedMsg{})
	require.NotNil(t, cmd)
	msg := cmd().(RecipeSubmittedMsg)
	assert.ErrorIs(t, msg.Err, ErrNoPublisher)

	fv.Update(msg)
	assert.Equal(t, "Pad Thai", fv.Value(fieldTitle), "a failed save keeps the input")
}

func TestFormView_SubmitPublic(t *testing.T) {
	lib := newTestLibrary(t)
	pub := &fakePublisher{}
	fv := NewFormView(lib, nil, pub)
	fv.inputs[fieldTitle].SetValue("Pad Thai")

	// Toggle visibility from the privacy field.
	fv.focusField(fieldPrivacy)
	assert.False(t, fv.CapturingInput())
	fv.Update(key(" "))
	require.True(t, fv.isPublic)

	msg := fv.Update(SubmitRequestedMsg{})().(RecipeSubmittedMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, models.PrivacyPublic, msg.Privacy)
	assert.Equal(t, "remote-1", msg.Dish.ID)
	require.Len(t, pub.published, 1)

	dishes, err := lib.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, dishes, "public recipes are not stored locally")
}

func TestFormView_PublishError(t *testing.T) {
	fv := NewFormView(newTestLibrary(t), nil, &fakePublisher{err: errors.New("status 503")})
	fv.inputs[fieldTitle].SetValue("Pad Thai")
	fv.isPublic = true

	msg := fv.Update(SubmitRequestedMsg{})().(RecipeSubmittedMsg)
	require.Error(t, msg.Err)
	fv.Update(msg)
	assert.Contains(t, fv.View(), "Save failed")
}

func TestFormView_EditUpdatesSavedRecipe(t *testing.T) {
	lib := newTestLibrary(t)
	ctx := context.Background()
	orig, err := lib.Create(ctx, models.SampleDishes()[1])
	require.NoError(t, err)

	fv := NewFormView(lib, nil, nil)
	fv.Edit(orig)
	require.NotNil(t, fv.Editing())
	assert.Equal(t, "Chickpea Curry", fv.Value(fieldTitle))
	assert.True(t, fv.CapturingInput())

	fv.inputs[fieldTitle].SetValue("Weeknight Chickpea Curry")
	msg := fv.Update(SubmitRequestedMsg{})().(RecipeSubmittedMsg)
	require.NoError(t, msg.Err)
	assert.True(t, msg.Edited)

	got, err := lib.Get(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weeknight Chickpea Curry", got.Title)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)

	fv.Update(msg)
	assert.Nil(t, fv.Editing())
}

func TestFormView_Import(t *testing.T) {
	imp := &fakeImporter{dish: &models.Dish{
		Title:       "Shakshuka",
		Tags:        []string{"breakfast"},
		OriginalURL: "https://example.com/shakshuka",
		Ingredients: models.IngredientList{models.RawIngredient("6 eggs")},
	}}
	fv := NewFormView(newTestLibrary(t), imp, nil)
	fv.inputs[fieldURL].SetValue("https://example.com/shakshuka")

	cmd := fv.Update(key("ctrl+u"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, ImportCompletedMsg{}, msg)
	assert.Equal(t, []string{"https://example.com/shakshuka"}, imp.urls)

	fv.Update(msg)
	assert.Equal(t, "Shakshuka", fv.Value(fieldTitle))
	assert.Equal(t, "breakfast", fv.Value(fieldTags))
	assert.Equal(t, "6 eggs", fv.Value(fieldIngredients))
	assert.True(t, fv.imported)
}

func TestFormView_ImportWithoutURL(t *testing.T) {
	fv := NewFormView(newTestLibrary(t), &fakeImporter{}, nil)
	assert.Nil(t, fv.Update(key("ctrl+u")))
	assert.Contains(t, fv.View(), "Enter a recipe URL to import")
}

func TestFormView_ImportFailure(t *testing.T) {
	fv := NewFormView(newTestLibrary(t), &fakeImporter{err: errors.New("no recipe found")}, nil)
	fv.inputs[fieldURL].SetValue("https://example.com/blog")

	fv.Update(fv.Update(key("enter"))())
	assert.Empty(t, fv.Value(fieldTitle))
	assert.Contains(t, fv.View(), "Import failed")
}

func TestFormView_FocusCycling(t *testing.T) {
	fv := NewFormView(newTestLibrary(t), nil, nil)
	assert.True(t, fv.CapturingInput())

	fv.Update(key("esc"))
	assert.False(t, fv.CapturingInput())

	fv.Update(key("enter"))
	assert.True(t, fv.CapturingInput())

	fv.Update(key("shift+tab"))
	assert.Equal(t, fieldPrivacy, fv.focus)
	fv.Update(key("tab"))
	assert.Equal(t, fieldURL, fv.focus)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"thai", "quick_dinner"}, splitTags(" Thai ,Quick Dinner,, thai"))
	assert.Empty(t, splitTags(""))
}
