package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapi/internal/http-api/models"
)

func boolPtr(b bool) *bool { return &b }

func TestFromModelToUserResponse(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	modified := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	lastLogin := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	user := &models.User{
		ID:        "7c0d1f9a-52b2-4b1e-9d5e-2f6f0a1b2c3d",
		Name:      "Juan Rodriguez",
		Email:     "juan@rodriguez.org",
		Password:  "$2a$10$hash",
		Created:   created,
		Modified:  &modified,
		LastLogin: &lastLogin,
		Token:     "jwt-token",
		IsActive:  boolPtr(true),
		Phones: []models.Phone{
			{ID: 1, UserID: "x", Number: "1234567", CityCode: "1", CountryCode: "57"},
			{ID: 2, UserID: "x", Number: "7654321", CityCode: "2", CountryCode: "56"},
		},
	}

	resp := FromModelToUserResponse(user)

	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, "Juan Rodriguez", resp.Name)
	assert.Equal(t, "$2a$10$hash", resp.Password)
	assert.Equal(t, created, resp.Created.Time)
	require.NotNil(t, resp.Modified)
	assert.Equal(t, modified, resp.Modified.Time)
	assert.Equal(t, lastLogin, resp.LastLogin.Time)
	assert.Equal(t, "jwt-token", resp.Token)
	assert.True(t, resp.IsActive)
	assert.Equal(t, []PhoneResponse{
		{Number: "1234567", CityCode: "1", CountryCode: "57"},
		{Number: "7654321", CityCode: "2", CountryCode: "56"},
	}, resp.Phones)
}

func TestFromModelToUserResponse_Defaults(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	user := &models.User{ID: "id", Created: created}

	resp := FromModelToUserResponse(user)

	assert.Equal(t, created, resp.LastLogin.Time, "lastLogin falls back to created")
	assert.False(t, resp.IsActive, "missing isActive reads as false")
	assert.Nil(t, resp.Modified)
	assert.NotNil(t, resp.Phones)
	assert.Empty(t, resp.Phones)
}

func TestUserResponse_JSONShape(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	resp := FromModelToUserResponse(&models.User{
		ID:       "id",
		Name:     "n",
		Email:    "e@x.cl",
		Created:  created,
		IsActive: boolPtr(true),
		Phones:   []models.Phone{{Number: "1", CityCode: "2", CountryCode: "3"}},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))

	for _, key := range []string{"id", "name", "email", "password", "phones", "created", "modified", "lastLogin", "token", "isActive"} {
		assert.Contains(t, body, key)
	}
	assert.Equal(t, "2024-05-01", body["created"])
	assert.Equal(t, "2024-05-01", body["lastLogin"])
	assert.Nil(t, body["modified"])
	assert.Equal(t, []any{map[string]any{"number": "1", "citycode": "2", "countrycode": "3"}}, body["phones"])
}

func TestCreateUserRequest_ToModel(t *testing.T) {
	payload := `{
		"name": "Juan Rodriguez",
		"email": "juan@rodriguez.org",
		"password": "Hunter2abc",
		"lastLogin": "2024-04-30",
		"phones": [{"number": "1234567", "citycode": "1", "countrycode": "57"}]
	}`

	var req CreateUserRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	user := req.ToModel()
	assert.Empty(t, user.ID)
	assert.Equal(t, "Hunter2abc", user.Password)
	require.NotNil(t, user.LastLogin)
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), *user.LastLogin)
	require.Len(t, user.Phones, 1)
	assert.Equal(t, models.Phone{Number: "1234567", CityCode: "1", CountryCode: "57"}, user.Phones[0])
}

func TestUpdateUserRequest_ToModel(t *testing.T) {
	req := UpdateUserRequest{Name: "n", Email: "e@x.cl", Password: "p"}

	user := req.ToModel()
	assert.Equal(t, "e@x.cl", user.Email)
	assert.NotNil(t, user.Phones)
	assert.Nil(t, user.LastLogin)
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-04-30T15:04:05Z"`), &d))
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), d.Time)

	assert.Error(t, json.Unmarshal([]byte(`"30/04/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240430`), &d))

	var p *Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	assert.Nil(t, p)
}
