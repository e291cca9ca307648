package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	aiHandler "github.com/ymatsux/gyakuaki/backend/internal/handler/ai"
	dataHandler "github.com/ymatsux/gyakuaki/backend/internal/handler/data"
	sessionHandler "github.com/ymatsux/gyakuaki/backend/internal/handler/session"
	middlewarePkg "github.com/ymatsux/gyakuaki/backend/internal/middleware"
	"github.com/ymatsux/gyakuaki/backend/internal/model/person"
	hintService "github.com/ymatsux/gyakuaki/backend/internal/service/hint"
	questionService "github.com/ymatsux/gyakuaki/backend/internal/service/question"
	sessionService "github.com/ymatsux/gyakuaki/backend/internal/service/session"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(store person.Store, sessions *sessionService.Service, questions *questionService.Service, hints *hintService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		sessionHandler.New(sessions).RegisterRoutes(api)
		aiHandler.New(questions, hints, sessions).RegisterRoutes(api)
		dataHandler.New(store).RegisterRoutes(api)
	})

	return r
}
