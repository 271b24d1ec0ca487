package http

import (
	"net/http"

	"healthconnect/internal/delivery/http/handler"
	"healthconnect/internal/delivery/http/middleware"
	"healthconnect/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	questionHandler    *handler.QuestionHandler
	storyHandler       *handler.StoryHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	questionHandler *handler.QuestionHandler,
	storyHandler *handler.StoryHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		questionHandler:    questionHandler,
		storyHandler:       storyHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	auth.Handle("/logout", r.protect(r.authHandler.Logout)).Methods(http.MethodPost)
	auth.Handle("/me", r.protect(r.authHandler.GetCurrentUser)).Methods(http.MethodGet)

	// Appointment routes (protected, per-appointment checks live in the usecase)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("/health-professionals", r.appointmentHandler.ListProfessionals).Methods(http.MethodGet)
	appointments.Handle("", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.Create))).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Cancel).Methods(http.MethodDelete)
	appointments.HandleFunc("/{id}/history", r.appointmentHandler.History).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPut)

	// Question routes
	questions := api.PathPrefix("/questions").Subrouter()
	questions.HandleFunc("", r.questionHandler.List).Methods(http.MethodGet)
	questions.Handle("", r.protect(r.questionHandler.Ask)).Methods(http.MethodPost)
	questions.Handle("/{id}/answer", r.protect(r.questionHandler.Answer, middleware.RequireProfessional)).Methods(http.MethodPut)
	questions.Handle("/{id}", r.protect(r.questionHandler.Delete, middleware.RequireProfessional)).Methods(http.MethodDelete)

	// Story routes; /my/posts is registered before /{id}
	stories := api.PathPrefix("/stories").Subrouter()
	stories.HandleFunc("", r.storyHandler.List).Methods(http.MethodGet)
	stories.Handle("", r.protect(r.storyHandler.Create)).Methods(http.MethodPost)
	stories.Handle("/my/posts", r.protect(r.storyHandler.ListMine)).Methods(http.MethodGet)
	stories.HandleFunc("/{id}", r.storyHandler.Get).Methods(http.MethodGet)
	stories.Handle("/{id}/like", r.protect(r.storyHandler.ToggleLike)).Methods(http.MethodPost)
	stories.Handle("/{id}/comments", r.protect(r.storyHandler.AddComment)).Methods(http.MethodPost)

	// A subrouter answers its own misses, so each one needs the JSON handlers.
	for _, router := range []*mux.Router{r.router, api, auth, appointments, questions, stories} {
		withJSONErrors(router)
	}

	// mux only runs Use middleware on matched routes, so CORS and access
	// logging wrap the whole router to cover preflight and unknown paths.
	return r.loggingMiddleware.Handle(r.corsMiddleware.Handle(r.router))
}

func withJSONErrors(router *mux.Router) {
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.MethodNotAllowed(w)
	})
}

// protect wraps a single handler with authentication and optional guards
func (r *Router) protect(h http.HandlerFunc, guards ...func(http.Handler) http.Handler) http.Handler {
	var next http.Handler = h
	for i := len(guards) - 1; i >= 0; i-- {
		next = guards[i](next)
	}
	return r.authMiddleware.Authenticate(next)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "HealthConnect API is running", map[string]string{"status": "ok"})
}
