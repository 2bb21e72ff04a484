package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ajan-it/huisgenoot-maatje-sub000/internal/api"
	apiMiddleware "github.com/ajan-it/huisgenoot-maatje-sub000/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. It accepts the application dependencies to
// create handlers and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	taskHandler := api.NewTaskHandler(app.householdService, app.logger)
	personHandler := api.NewPersonHandler(app.householdService, app.logger)
	planHandler := api.NewPlanHandler(app.planService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Task definition endpoints
		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)

		// Household member endpoints
		r.Post("/people", personHandler.CreatePerson)
		r.Get("/people", personHandler.ListPeople)
		r.Get("/people/{id}", personHandler.GetPerson)
		r.Put("/people/{id}", personHandler.UpdatePerson)
		r.Delete("/people/{id}", personHandler.DeletePerson)

		// Plan endpoints
		r.Post("/plans", planHandler.GeneratePlan)
		r.Get("/plans/{id}", planHandler.GetPlan)
		r.Post("/plans/{id}/rebalance", planHandler.RebalancePlan)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
