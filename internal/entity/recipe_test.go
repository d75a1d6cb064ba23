package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipeLists(t *testing.T) {
	r := &Recipe{Ingredients: "Egg, Flour", Steps: "Mix\nBake"}
	assert.Equal(t, []string{"Egg", "Flour"}, r.IngredientList())
	assert.Equal(t, []string{"Mix", "Bake"}, r.StepList())
}

func TestSplitList_DropsEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,, b ,", ","))
	assert.Equal(t, []string{}, SplitList("", ","))

	r := &Recipe{Steps: "Whisk\r\n\r\nFold\n"}
	assert.Equal(t, []string{"Whisk", "Fold"}, r.StepList())
}

func TestActor(t *testing.T) {
	admin := Actor{UserID: 1, Role: RoleAdmin}
	chef := Actor{UserID: 2, Role: RoleChef}
	user := Actor{UserID: 3, Role: RoleUser}

	assert.True(t, admin.Owns(99))
	assert.True(t, chef.Owns(2))
	assert.False(t, chef.Owns(3))
	assert.True(t, chef.CanPublish())
	assert.False(t, user.CanPublish())
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{Limit: DefaultPageSize}, NewPage(0, -5))
	assert.Equal(t, Page{Limit: MaxPageSize, Offset: 10}, NewPage(1000, 10))
}
