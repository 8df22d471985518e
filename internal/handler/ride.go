package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ridebooking/internal/domain"
	"ridebooking/internal/middleware"
	"ridebooking/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// CreateRideRequest is the HTTP request body for requesting a ride.
type CreateRideRequest struct {
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	PaymentMethod   string `json:"payment_method"` // CASH, ONLINE
}

// UpdateStatusRequest is the HTTP request body for a status update.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// FeedbackRequest is the HTTP request body for ride feedback.
type FeedbackRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback,omitempty"`
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID              string  `json:"id"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	Price           float64 `json:"price"`
	Status          string  `json:"status"`
	PaymentMethod   string  `json:"payment_method"`
	CustomerID      string  `json:"customer_id"`
	DriverID        *string `json:"driver_id,omitempty"`
	Rating          *int    `json:"rating,omitempty"`
	Feedback        *string `json:"feedback,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// UserRef is a compact user reference attached to ride listings.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// RideDetailResponse is a ride joined with its user references.
type RideDetailResponse struct {
	RideResponse
	Customer *UserRef `json:"customer,omitempty"`
	Driver   *UserRef `json:"driver,omitempty"`
}

func toRideResponse(ride *domain.Ride) RideResponse {
	return RideResponse{
		ID:              ride.ID,
		PickupLocation:  ride.PickupLocation,
		DropoffLocation: ride.DropoffLocation,
		Price:           ride.Price,
		Status:          string(ride.Status),
		PaymentMethod:   string(ride.PaymentMethod),
		CustomerID:      ride.CustomerID,
		DriverID:        ride.DriverID,
		Rating:          ride.Rating,
		Feedback:        ride.Feedback,
		CreatedAt:       ride.CreatedAt.Format(time.RFC3339),
	}
}

func toUserRef(u *domain.User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name, Phone: u.Phone}
}

func toDetailResponses(details []*service.RideDetail) []RideDetailResponse {
	responses := make([]RideDetailResponse, 0, len(details))
	for _, d := range details {
		responses = append(responses, RideDetailResponse{
			RideResponse: toRideResponse(d.Ride),
			Customer:     toUserRef(d.Customer),
			Driver:       toUserRef(d.Driver),
		})
	}
	return responses
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), principal, service.CreateRideRequest{
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// AcceptRide handles POST /v1/rides/:id/accept
func (h *RideHandler) AcceptRide(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	ride, err := h.rideService.AcceptRide(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// UpdateStatus handles PUT /v1/rides/:id/status
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.UpdateStatus(c.Request.Context(), principal, service.UpdateStatusRequest{
		RideID: c.Param("id"),
		Status: domain.RideStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	ride, err := h.rideService.CancelRide(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// ProvideFeedback handles PUT /v1/rides/:id/feedback
func (h *RideHandler) ProvideFeedback(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.ProvideFeedback(c.Request.Context(), principal, service.FeedbackRequest{
		RideID:   c.Param("id"),
		Rating:   req.Rating,
		Feedback: req.Feedback,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// ListForCustomer handles GET /v1/rides/customer/:customerId
func (h *RideHandler) ListForCustomer(c *gin.Context) {
	details, err := h.rideService.ListRidesForCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDetailResponses(details))
}

// ListForDriver handles GET /v1/rides/driver/:driverId
func (h *RideHandler) ListForDriver(c *gin.Context) {
	details, err := h.rideService.ListRidesForDriver(c.Request.Context(), c.Param("driverId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDetailResponses(details))
}

// CompletedHistory handles GET /v1/rides/customer/:customerId/history
func (h *RideHandler) CompletedHistory(c *gin.Context) {
	details, err := h.rideService.GetCompletedHistory(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDetailResponses(details))
}

// ListFeedback handles GET /v1/rides/feedback
func (h *RideHandler) ListFeedback(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	details, err := h.rideService.ListFeedback(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDetailResponses(details))
}
