package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridebooking/internal/domain"
	"ridebooking/internal/middleware"
	"ridebooking/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUpRequest is the HTTP request body for registration.
type SignUpRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Phone        string  `json:"phone,omitempty"`
	Role         string  `json:"role"` // CUSTOMER, DRIVER, MANAGER
	LicensePlate *string `json:"license_plate,omitempty"`
	VehicleModel *string `json:"vehicle_model,omitempty"`
}

// SignInRequest is the HTTP request body for sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the HTTP representation of a user, without credentials.
type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone,omitempty"`
	Role         string  `json:"role"`
	LicensePlate *string `json:"license_plate,omitempty"`
	VehicleModel *string `json:"vehicle_model,omitempty"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         string(u.Role),
		LicensePlate: u.LicensePlate,
		VehicleModel: u.VehicleModel,
	}
}

// SignUp handles POST /v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	role := req.Role
	if role == "" {
		role = string(domain.RoleCustomer)
	}

	user, err := h.authService.SignUp(c.Request.Context(), service.SignUpRequest{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		Role:         domain.Role(role),
		LicensePlate: req.LicensePlate,
		VehicleModel: req.VehicleModel,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toUserResponse(user))
}

// SignIn handles POST /v1/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"token": token})
}

// SignOut handles POST /v1/auth/signout
func (h *AuthHandler) SignOut(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or malformed authorization header"})
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "signed out"})
}
