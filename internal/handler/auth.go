package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rideauth/internal/domain"
	"rideauth/internal/middleware"
	"rideauth/internal/service"
)

// AuthHandler handles HTTP requests for authentication and profiles.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// UserResponse is the sanitized user view returned by signup and signin.
type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

// ProfileResponse is the extended user view returned by profile routes.
type ProfileResponse struct {
	UserResponse
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AuthResponse is the body of a successful signup or signin.
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "An error occurred during signup")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Message: "Account created successfully",
		Token:   result.Token,
		User:    toUserResponse(result.User),
	})
}

// Signin handles POST /api/auth/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req service.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.authService.Signin(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "An error occurred during signin")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    toUserResponse(result.User),
	})
}

// GetProfile handles GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "An error occurred while fetching profile")
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile handles PATCH /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err, "An error occurred while updating profile")
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(user))
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Role:       string(u.Role),
		IsVerified: u.IsVerified,
	}
}

func toProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{
		UserResponse:   toUserResponse(u),
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
	}
}
