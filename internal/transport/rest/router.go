package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	_ "github.com/saran8796/survey-application/docs"
	"github.com/saran8796/survey-application/internal/config"
	"github.com/saran8796/survey-application/internal/service"
	"github.com/saran8796/survey-application/internal/transport/rest/handler"
	"github.com/saran8796/survey-application/internal/transport/rest/middleware"
	"github.com/saran8796/survey-application/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Config          *config.Config
	Logger          *slog.Logger
	AuthService     *service.AuthService
	SurveyService   *service.SurveyService
	ResponseService *service.ResponseService
	ResultsService  *service.ResultsService
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	rs := handler.Responder{ShowInternalErrors: c.Config.IsDevelopment()}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(rs, c.AuthService)
	surveyHandler := handler.NewSurveyHandler(rs, c.SurveyService)
	responseHandler := handler.NewResponseHandler(rs, c.ResponseService)
	resultsHandler := handler.NewResultsHandler(rs, c.ResultsService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.SurveyService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logging(logger))
	r.Use(corsMiddleware(c.Config.AllowedOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// WebSocket routes (token in query param, no request timeout)
	api.HandleFunc("/ws/surveys/{id}/results", wsHandler.ResultsWS).Methods("GET")

	timeout := withTimeout(c.Config.RequestTimeout)

	// Owner routes come first so /surveys/my is not captured by /surveys/{id}
	user := api.NewRoute().Subrouter()
	user.Use(timeout, authMW.RequireUser)
	user.HandleFunc("/auth/user", authHandler.User).Methods("GET", "OPTIONS")
	user.HandleFunc("/surveys", surveyHandler.Create).Methods("POST", "OPTIONS")
	user.HandleFunc("/surveys/my", surveyHandler.Mine).Methods("GET", "OPTIONS")
	user.HandleFunc("/surveys/{id}", surveyHandler.Delete).Methods("DELETE", "OPTIONS")
	user.HandleFunc("/surveys/{id}/toggle-public", surveyHandler.TogglePublic).Methods("PUT", "OPTIONS")
	user.HandleFunc("/surveys/{id}/responses", responseHandler.List).Methods("GET", "OPTIONS")
	user.HandleFunc("/surveys/{id}/results", resultsHandler.Results).Methods("GET", "OPTIONS")
	user.HandleFunc("/surveys/{id}/export", resultsHandler.Export).Methods("GET", "OPTIONS")

	// Public routes
	public := api.NewRoute().Subrouter()
	public.Use(timeout)
	public.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	public.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	public.HandleFunc("/surveys", surveyHandler.List).Methods("GET", "OPTIONS")
	public.HandleFunc("/surveys/{id}", surveyHandler.Get).Methods("GET", "OPTIONS")
	public.HandleFunc("/surveys/{id}/responses/public", responseHandler.ListPublic).Methods("GET", "OPTIONS")
	public.HandleFunc("/surveys/{id}/results/public", resultsHandler.PublicResults).Methods("GET", "OPTIONS")

	// Submissions accept an optional token
	submit := api.NewRoute().Subrouter()
	submit.Use(timeout, authMW.OptionalUser)
	submit.HandleFunc("/surveys/{id}/responses", responseHandler.Submit).Methods("POST", "OPTIONS")

	return r
}

func withTimeout(d time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func corsMiddleware(origins string) mux.MiddlewareFunc {
	if origins == "" {
		origins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.TokenHeader)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
