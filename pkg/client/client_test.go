package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"culinary-hub/internal/controller/http/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRecipes_SendsQueryAndToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes", r.URL.Path)
		assert.Equal(t, "Italian", r.URL.Query().Get("cuisine"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items":  []map[string]interface{}{{"id": 1, "recipeName": "Carbonara", "ingredients": []string{"eggs"}}},
			"total":  1,
			"limit":  10,
			"offset": 0,
		})
	}))
	defer server.Close()

	c := New(server.URL + "/api").WithToken("abc")
	list, err := c.ListRecipes(context.Background(), "Italian", 10, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Carbonara", list.Items[0].RecipeName)
	assert.Equal(t, []string{"eggs"}, list.Items[0].Ingredients)
}

func TestDo_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Authorization header required"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).Profile(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDo_APIErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(4), body["courseId"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"already enrolled in this course"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).WithToken("t").Enroll(context.Background(), 4)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "already enrolled in this course", apiErr.Message)
}

func TestDo_PlainTextErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("already enrolled in this course\n"))
	}))
	defer server.Close()

	_, err := New(server.URL).WithToken("t").Enroll(context.Background(), 4)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "already enrolled in this course", apiErr.Message)
}

func TestDo_EmptyErrorBodyFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(server.URL).WithToken("t").Profile(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "404 Not Found", apiErr.Message)
}

func TestUpdateProgress_DecodesEnrollment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/Enrollment/7/progress", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1.00", body["progress"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"courseId":7,"progress":1.00,"completed":true}`))
	}))
	defer server.Close()

	enrollment, err := New(server.URL).WithToken("t").UpdateProgress(context.Background(), 7, "1.00")

	require.NoError(t, err)
	assert.True(t, enrollment.Completed)
	assert.True(t, enrollment.Progress.Complete())
	assert.IsType(t, dto.EnrollmentResponse{}, *enrollment)
}
