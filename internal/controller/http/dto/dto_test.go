package dto

import (
	"encoding/json"
	"testing"

	"culinary-hub/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextList_UnmarshalJSON(t *testing.T) {
	var req RecipeRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"recipeName": "Pesto",
		"ingredients": "basil, pine nuts, garlic",
		"steps": ["Pound garlic", "Add basil"]
	}`), &req))

	assert.Equal(t, "basil, pine nuts, garlic", req.Ingredients.Text)
	assert.Nil(t, req.Ingredients.Items)
	assert.Equal(t, []string{"Pound garlic", "Add basil"}, req.Steps.Items)

	var empty RecipeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"ingredients": null, "steps": []}`), &empty))
	assert.Equal(t, TextList{}, empty.Ingredients)
	assert.NotNil(t, empty.Steps.Items)

	assert.Error(t, json.Unmarshal([]byte(`{"ingredients": 42}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"ingredients": [1, 2]}`), &req))
}

func TestToRecipeResponse_SplitsLists(t *testing.T) {
	resp := ToRecipeResponse(&entity.Recipe{
		ID:          1,
		Ingredients: " flour ,water,, salt ",
		Steps:       "Mix\r\n\r\nRest\nBake",
	})

	assert.Equal(t, []string{"flour", "water", "salt"}, resp.Ingredients)
	assert.Equal(t, []string{"Mix", "Rest", "Bake"}, resp.Steps)

	resp = ToRecipeResponse(&entity.Recipe{})
	assert.Equal(t, []string{}, resp.Ingredients)
}

func TestNewList(t *testing.T) {
	users := []*entity.User{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}}
	list := NewList(users, 7, entity.NewPage(2, 4), ToUserResponse)

	assert.Equal(t, int64(7), list.Total)
	assert.Equal(t, 2, list.Limit)
	assert.Equal(t, 4, list.Offset)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "b", list.Items[1].Username)

	raw, err := json.Marshal(NewList([]*entity.User{}, 0, entity.NewPage(0, 0), ToUserResponse))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"total":0,"limit":20,"offset":0}`, string(raw))
}

func TestToCommentTree_EmptyRepliesAreArrays(t *testing.T) {
	tree := ToCommentTree([]*entity.CommentNode{{Comment: &entity.Comment{ID: 1}}})

	raw, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"replies":[]`)
}
