package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/atomic"

	"github.com/dinehall/dinehall/database"
	"github.com/dinehall/dinehall/handlers"
	"github.com/dinehall/dinehall/middlewares"
	"github.com/dinehall/dinehall/models"
)

type Server struct {
	Router *mux.Router
	server *http.Server

	requestsServed atomic.Int64
	startedAt      time.Time
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes() *Server {
	svr := &Server{startedAt: time.Now()}

	router := mux.NewRouter()
	router.Use(svr.countRequests)

	authRoutes := router.PathPrefix("/api").Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware)

	router.HandleFunc("/health", svr.health).Methods("GET")
	router.HandleFunc("/register", handlers.Register).Methods("POST")
	router.HandleFunc("/login", handlers.Login).Methods("POST")
	router.HandleFunc("/refresh", handlers.RefreshToken).Methods("POST")
	authRoutes.HandleFunc("/logout", handlers.Logout).Methods("POST")

	// any authenticated staff member
	authRoutes.HandleFunc("/customers", handlers.ListCustomers).Methods("GET")
	authRoutes.HandleFunc("/customers", handlers.CreateCustomer).Methods("POST")
	authRoutes.HandleFunc("/customers/{id}", handlers.GetCustomer).Methods("GET")
	authRoutes.HandleFunc("/customers/{id}", handlers.UpdateCustomer).Methods("PUT")
	authRoutes.HandleFunc("/customers/{id}/feedback", handlers.AddCustomerFeedback).Methods("POST")

	authRoutes.HandleFunc("/menu", handlers.ListMenuItems).Methods("GET")
	authRoutes.HandleFunc("/menu/{id}", handlers.GetMenuItem).Methods("GET")
	authRoutes.HandleFunc("/menu/{id}/ingredients", handlers.GetMenuItemIngredients).Methods("GET")

	authRoutes.HandleFunc("/orders", handlers.CreateOrder).Methods("POST")
	authRoutes.HandleFunc("/orders", handlers.ListOrders).Methods("GET")
	authRoutes.HandleFunc("/orders/{id}", handlers.GetOrder).Methods("GET")
	authRoutes.HandleFunc("/orders/{id}/status", handlers.UpdateOrderStatus).Methods("PATCH")
	authRoutes.HandleFunc("/orders/{id}/payment", handlers.UpdateOrderPayment).Methods("PATCH")

	authRoutes.HandleFunc("/reservations", handlers.CreateReservation).Methods("POST")
	authRoutes.HandleFunc("/reservations", handlers.ListReservations).Methods("GET")
	authRoutes.HandleFunc("/reservations/{id}", handlers.GetReservation).Methods("GET")
	authRoutes.HandleFunc("/reservations/{id}", handlers.UpdateReservation).Methods("PUT")
	authRoutes.HandleFunc("/reservations/{id}/status", handlers.UpdateReservationStatus).Methods("PATCH")

	// admin and manager
	managed := authRoutes.PathPrefix("/").Subrouter()
	managed.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin, models.RoleManager))

	managed.HandleFunc("/customers/{id}", handlers.DeleteCustomer).Methods("DELETE")

	managed.HandleFunc("/menu", handlers.CreateMenuItem).Methods("POST")
	managed.HandleFunc("/menu/{id}", handlers.UpdateMenuItem).Methods("PUT")
	managed.HandleFunc("/menu/{id}", handlers.DeleteMenuItem).Methods("DELETE")
	managed.HandleFunc("/menu/{id}/availability", handlers.SetMenuItemAvailability).Methods("PATCH")
	managed.HandleFunc("/menu/{id}/ingredients", handlers.SetMenuItemIngredients).Methods("PUT")

	managed.HandleFunc("/inventory", handlers.ListInventoryItems).Methods("GET")
	managed.HandleFunc("/inventory", handlers.CreateInventoryItem).Methods("POST")
	managed.HandleFunc("/inventory/{id}", handlers.GetInventoryItem).Methods("GET")
	managed.HandleFunc("/inventory/{id}", handlers.UpdateInventoryItem).Methods("PUT")
	managed.HandleFunc("/inventory/{id}", handlers.DeleteInventoryItem).Methods("DELETE")
	managed.HandleFunc("/inventory/{id}/restock", handlers.RestockInventoryItem).Methods("POST")

	managed.HandleFunc("/reports/sales", handlers.SalesReport).Methods("GET")
	managed.HandleFunc("/reports/menu", handlers.MenuPerformanceReport).Methods("GET")
	managed.HandleFunc("/reports/customers", handlers.CustomerReport).Methods("GET")
	managed.HandleFunc("/reports/reservations", handlers.ReservationReport).Methods("GET")
	managed.HandleFunc("/reports/inventory", handlers.InventoryReport).Methods("GET")

	// admin only
	admin := authRoutes.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.RoleBasedMiddleware(models.RoleAdmin))

	admin.HandleFunc("/staff", handlers.CreateStaff).Methods("POST")
	admin.HandleFunc("/staff", handlers.ListStaff).Methods("GET")
	admin.HandleFunc("/staff/{id}", handlers.DeactivateStaff).Methods("DELETE")

	svr.Router = router
	return svr
}

func (svr *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		svr.requestsServed.Inc()
		next.ServeHTTP(w, r)
	})
}

func (svr *Server) health(w http.ResponseWriter, r *http.Request) {
	dbOK := database.DineHall != nil && database.DineHall.Ping() == nil

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"alive":           dbOK,
		"uptime_seconds":  int(time.Since(svr.startedAt).Seconds()),
		"requests_served": svr.requestsServed.Load(),
	})
}

func (svr *Server) Run(port string) error {
	svr.server = &http.Server{
		Addr:              port,
		Handler:           svr.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return svr.server.ListenAndServe()
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
