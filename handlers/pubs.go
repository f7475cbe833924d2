// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pint-index/cliparse"
	"github.com/danielhkuo/pint-index/middleware"
	"github.com/danielhkuo/pint-index/models"
	"github.com/danielhkuo/pint-index/store"
)

type PubHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewPubHandler(s store.Store, cfg cliparse.Config) *PubHandler {
	return &PubHandler{store: s, cfg: cfg}
}

// CreatePub handles POST /pubs
func (h *PubHandler) CreatePub(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePubRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Address = strings.TrimSpace(req.Address)
	if err := middleware.Validate(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	pub, err := h.store.CreatePub(r.Context(), models.Pub{Name: req.Name, Address: req.Address})
	if err != nil {
		storageError(w, r, "create pub", err)
		return
	}

	slog.Info("pub created", "pub_id", pub.ID, "name", pub.Name)

	middleware.JSONResponse(w, http.StatusCreated, pub)
}

// ListPubs handles GET /pubs
func (h *PubHandler) ListPubs(w http.ResponseWriter, r *http.Request) {
	pubs, err := h.store.ListPubs(r.Context())
	if err != nil {
		storageError(w, r, "list pubs", err)
		return
	}
	if pubs == nil {
		pubs = []models.Pub{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListPubsResponse{Pubs: pubs})
}
