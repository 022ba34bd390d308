package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, app.requestID, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("user"))

	mux := pat.New()

	// Auth
	mux.Post("/auth/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/auth/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))

	// Users
	mux.Get("/users/me", authMiddleware.ThenFunc(app.userHandler.GetProfile))
	mux.Post("/users/me/avatar", authMiddleware.ThenFunc(app.userHandler.UploadAvatar))
	mux.Post("/users/me/fcm_token", authMiddleware.ThenFunc(app.userHandler.RegisterFCMToken))
	mux.Get("/users/:id", authMiddleware.ThenFunc(app.userHandler.GetUserByID))

	// Vehicles
	mux.Post("/vehicles", authMiddleware.ThenFunc(app.vehicleHandler.CreateVehicle))
	mux.Get("/vehicles", authMiddleware.ThenFunc(app.vehicleHandler.ListMyVehicles))

	// Trips. The static paths must come before /trips/:id.
	mux.Get("/trips/public", standardMiddleware.ThenFunc(app.tripHandler.GetPublicTrips))
	mux.Get("/trips/dashboard", authMiddleware.ThenFunc(app.tripHandler.Dashboard))
	mux.Post("/trips", authMiddleware.ThenFunc(app.tripHandler.CreateTrip))
	mux.Get("/trips", authMiddleware.ThenFunc(app.tripHandler.GetTrips))
	mux.Get("/trips/:id", authMiddleware.ThenFunc(app.tripHandler.GetTripByID))
	mux.Post("/trips/:id/book", authMiddleware.ThenFunc(app.tripHandler.BookTrip))

	// Trip requests
	mux.Post("/trips/:id/requests", authMiddleware.ThenFunc(app.requestHandler.CreateRequest))
	mux.Get("/trips/:id/requests", authMiddleware.ThenFunc(app.requestHandler.ListRequests))
	mux.Add("PATCH", "/requests/:id", authMiddleware.ThenFunc(app.requestHandler.UpdateRequest))

	// Trip reservations
	mux.Post("/trip-reservations/request", authMiddleware.ThenFunc(app.reservationHandler.RequestReservation))
	mux.Post("/trip-reservations/:id/accept", authMiddleware.ThenFunc(app.reservationHandler.AcceptReservation))
	mux.Post("/trip-reservations/:id/reject", authMiddleware.ThenFunc(app.reservationHandler.RejectReservation))
	mux.Post("/trip-reservations/:id/cancel", authMiddleware.ThenFunc(app.reservationHandler.CancelReservation))
	mux.Post("/trip-reservations/:id/complete/driver", authMiddleware.ThenFunc(app.reservationHandler.CompleteByDriver))
	mux.Post("/trip-reservations/:id/complete/passenger", authMiddleware.ThenFunc(app.reservationHandler.CompleteByPassenger))

	// Chat
	mux.Get("/trips/:id/chat", authMiddleware.ThenFunc(app.chatHandler.GetTripChat))
	mux.Post("/trips/:id/chat/messages", authMiddleware.ThenFunc(app.chatHandler.SendMessage))
	mux.Get("/ws", http.HandlerFunc(app.WebSocketHandler))

	// Payments
	mux.Post("/trips/:id/payments", authMiddleware.ThenFunc(app.paymentHandler.CreatePayment))
	mux.Get("/payments/:id", authMiddleware.ThenFunc(app.paymentHandler.GetPayment))

	mux.Get("/health", standardMiddleware.ThenFunc(app.healthHandler.Health))

	return mux
}
