package dto

import (
	"time"

	"userapi/internal/http-api/models"
)

// Data Transfer Objects for the user endpoints

// PhoneRequest: a phone entry inside a user payload
type PhoneRequest struct {
	Number      string `json:"number"`
	CityCode    string `json:"citycode"`
	CountryCode string `json:"countrycode"`
}

// CreateUserRequest: payload for user creation, every field except userId and lastLogin is required
type CreateUserRequest struct {
	UserID    string         `json:"userId,omitempty"`
	Name      string         `json:"name" binding:"required"`
	Email     string         `json:"email" binding:"required,email"`
	Password  string         `json:"password" binding:"required"`
	Phones    []PhoneRequest `json:"phones" binding:"required,min=1"`
	LastLogin *Date          `json:"lastLogin,omitempty"`
}

// UpdateUserRequest: payload for user update, the email selects the user to update
type UpdateUserRequest struct {
	UserID   string         `json:"userId,omitempty"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Phones   []PhoneRequest `json:"phones"`
}

// PhoneResponse: a phone entry inside a user response
type PhoneResponse struct {
	Number      string `json:"number"`
	CityCode    string `json:"citycode"`
	CountryCode string `json:"countrycode"`
}

// UserResponse: the outward view of a user, returned by list, create and update
type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Phones    []PhoneResponse `json:"phones"`
	Created   Date            `json:"created"`
	Modified  *Date           `json:"modified"`
	LastLogin Date            `json:"lastLogin"`
	Token     string          `json:"token"`
	IsActive  bool            `json:"isActive"`
}

// ErrorResponse: uniform error body
type ErrorResponse struct {
	Mensaje string `json:"mensaje"`
}

// ToModel converts the creation payload into a user carrying the plaintext password.
func (r *CreateUserRequest) ToModel() *models.User {
	user := &models.User{
		ID:       r.UserID,
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Phones:   toPhoneModels(r.Phones),
	}
	if r.LastLogin != nil && !r.LastLogin.IsZero() {
		lastLogin := r.LastLogin.Time
		user.LastLogin = &lastLogin
	}
	return user
}

// ToModel converts the update payload into a user carrying the plaintext password.
func (r *UpdateUserRequest) ToModel() *models.User {
	return &models.User{
		ID:       r.UserID,
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Phones:   toPhoneModels(r.Phones),
	}
}

func toPhoneModels(phones []PhoneRequest) []models.Phone {
	result := make([]models.Phone, 0, len(phones))
	for _, p := range phones {
		result = append(result, models.Phone{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}
	return result
}

// FromModelToUserResponse builds the response view of a persisted user.
// lastLogin falls back to created and a missing isActive reads as false.
func FromModelToUserResponse(user *models.User) *UserResponse {
	phones := make([]PhoneResponse, 0, len(user.Phones))
	for _, p := range user.Phones {
		phones = append(phones, PhoneResponse{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}

	lastLogin := user.Created
	if user.LastLogin != nil {
		lastLogin = *user.LastLogin
	}

	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		Phones:    phones,
		Created:   dateOrZero(user.Created),
		Modified:  DatePtr(user.Modified),
		LastLogin: dateOrZero(lastLogin),
		Token:     user.Token,
		IsActive:  user.IsActive != nil && *user.IsActive,
	}
}

// FromModelsToUserResponses maps a slice of users through FromModelToUserResponse.
func FromModelsToUserResponses(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *FromModelToUserResponse(&users[i]))
	}
	return responses
}

func dateOrZero(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t)
}
