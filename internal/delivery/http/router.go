package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"familyagenda/internal/delivery/http/controllers"
	"familyagenda/internal/delivery/http/middleware"
	"familyagenda/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	authController *controllers.AuthController,
	userController *controllers.UserController,
	eventController *controllers.EventController,
	invitationController *controllers.InvitationController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(userController.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(userController.UpdateMe))

	// Events
	mux.HandleFunc("POST /events", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/me", auth(eventController.ListMyEvents))
	mux.HandleFunc("GET /events/{eventID}", auth(eventController.GetEventByID))
	mux.HandleFunc("PATCH /events/{eventID}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.DeleteEvent))

	// Invitations
	mux.HandleFunc("POST /events/{eventID}/invitations", auth(invitationController.IssueInvitations))
	mux.HandleFunc("GET /events/{eventID}/invitations", auth(invitationController.ListEventInvitations))
	mux.HandleFunc("POST /invitations/{invitationID}/accept", auth(invitationController.AcceptInvitation))
	mux.HandleFunc("POST /invitations/{invitationID}/decline", auth(invitationController.DeclineInvitation))
	mux.HandleFunc("GET /invitations/me", auth(invitationController.ListMyInvitations))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
