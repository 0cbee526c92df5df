package http

import (
	"net/http"

	"go-doggy-daycare/internal/delivery/http/handler"
	"go-doggy-daycare/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	dogHandler     *handler.DogHandler
	bookingHandler *handler.BookingHandler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	dogHandler *handler.DogHandler,
	bookingHandler *handler.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		authHandler:    authHandler,
		userHandler:    userHandler,
		dogHandler:     dogHandler,
		bookingHandler: bookingHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// User management (protected - admin only)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.Use(middleware.RequireAdmin)
	users.HandleFunc("", r.userHandler.CreateUser).Methods(http.MethodPost)
	users.HandleFunc("/owners", r.userHandler.GetAllOwners).Methods(http.MethodGet)
	users.HandleFunc("/{id}", r.userHandler.GetUser).Methods(http.MethodGet)
	users.HandleFunc("/{id}", r.userHandler.UpdateUser).Methods(http.MethodPut)
	users.HandleFunc("/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)

	// Dog routes (protected)
	dogs := api.PathPrefix("/dogs").Subrouter()
	dogs.Use(r.authMiddleware.Authenticate)
	dogs.HandleFunc("", r.dogHandler.CreateDog).Methods(http.MethodPost)
	dogs.HandleFunc("", r.dogHandler.GetAllDogs).Methods(http.MethodGet)
	dogs.HandleFunc("/user/{userId}", r.dogHandler.GetDogsByOwner).Methods(http.MethodGet)
	dogs.HandleFunc("/{id}", r.dogHandler.GetDog).Methods(http.MethodGet)
	dogs.HandleFunc("/{id}", r.dogHandler.UpdateDog).Methods(http.MethodPut)
	dogs.HandleFunc("/{id}", r.dogHandler.DeleteDog).Methods(http.MethodDelete)

	// Booking routes (protected)
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.HandleFunc("", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	bookings.HandleFunc("", r.bookingHandler.GetAllBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/date/{date}", r.bookingHandler.GetBookingsByDate).Methods(http.MethodGet)
	bookings.HandleFunc("/dog/{dogId}", r.bookingHandler.GetBookingsByDog).Methods(http.MethodGet)
	bookings.HandleFunc("/user/{userId}", r.bookingHandler.GetBookingsByUser).Methods(http.MethodGet)
	bookings.HandleFunc("/status/{status}", r.bookingHandler.GetBookingsByStatus).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", r.bookingHandler.UpdateBooking).Methods(http.MethodPut)
	bookings.HandleFunc("/{id}", r.bookingHandler.DeleteBooking).Methods(http.MethodDelete)
	bookings.HandleFunc("/{id}/check-in", r.bookingHandler.CheckIn).Methods(http.MethodPost)
	bookings.HandleFunc("/{id}/check-out", r.bookingHandler.CheckOut).Methods(http.MethodPost)
	bookings.HandleFunc("/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
