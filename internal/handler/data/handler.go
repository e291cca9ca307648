package data

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ymatsux/gyakuaki/backend/internal/model/person"
	"github.com/ymatsux/gyakuaki/backend/pkg/utils"
)

// Handler serves the dataset bootstrap the frontend fetches once per game.
type Handler struct {
	store person.Store
}

// New creates the data handler.
func New(store person.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the data routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/data/init", h.handleInit)
}

func (h *Handler) handleInit(w http.ResponseWriter, r *http.Request) {
	snapshot := person.Snapshot{
		Persons:          h.store.Persons(),
		Attributes:       h.store.Attributes(),
		PersonAttributes: h.store.PersonAttributes(),
	}

	utils.RespondJSON(w, http.StatusOK, snapshot)
}
