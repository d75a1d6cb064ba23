package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quizInput struct {
	Question      string `validate:"required,notblank"`
	CorrectAnswer string `validate:"required,answer"`
	Rating        int    `validate:"gte=1,lte=5"`
}

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, RegisterOn(v))
	return v
}

func TestCustomTags(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(quizInput{Question: "Which oil?", CorrectAnswer: "C", Rating: 3}))
	assert.Error(t, v.Struct(quizInput{Question: "   ", CorrectAnswer: "C", Rating: 3}))
	assert.Error(t, v.Struct(quizInput{Question: "Which oil?", CorrectAnswer: "E", Rating: 3}))
	assert.Error(t, v.Struct(quizInput{Question: "Which oil?", CorrectAnswer: "a", Rating: 3}))
}

func TestMessage(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(quizInput{Question: " ", CorrectAnswer: "Z", Rating: 9})
	require.Error(t, err)

	msg := Message(err)
	assert.Contains(t, msg, "Question must not be blank")
	assert.Contains(t, msg, "CorrectAnswer must be one of A, B, C, D")
	assert.Contains(t, msg, "Rating must be less than or equal to 5")
}

type reviewInput struct {
	CourseID uint `json:"courseId" validate:"required"`
}

func TestMessage_UsesJSONNames(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(reviewInput{})
	require.Error(t, err)
	assert.Equal(t, "courseId is required", Message(err))
}
