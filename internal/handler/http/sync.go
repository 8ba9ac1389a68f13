// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-digest-sync/internal/logger"
	"github.com/MKhiriev/go-digest-sync/internal/utils"
	"github.com/MKhiriev/go-digest-sync/models"
)

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, found := utils.GetOwnerIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.startSession").Msg("no owner ID was given")
		http.Error(w, "no owner ID was given", http.StatusBadRequest)
		return
	}

	var request models.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.startSession").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	info, err := h.services.SessionService.StartSession(ctx, ownerID, request.ClientID, request.Limit)
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.startSession").Msg("error starting sync session")
		http.Error(w, "error starting sync session", statusFromError(err))
		return
	}

	utils.WriteJSON(w, info, http.StatusOK)
}

func (h *Handler) fullSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, found := utils.GetOwnerIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.fullSync").Msg("no owner ID was given")
		http.Error(w, "no owner ID was given", http.StatusBadRequest)
		return
	}

	var request models.FullSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.fullSync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.SyncService.GetFull(ctx, ownerID, request)
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.fullSync").Msg("error serving full sync page")
		http.Error(w, "error serving full sync page", statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) deltaSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, found := utils.GetOwnerIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.deltaSync").Msg("no owner ID was given")
		http.Error(w, "no owner ID was given", http.StatusBadRequest)
		return
	}

	var request models.DeltaSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.deltaSync").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.SyncService.GetDelta(ctx, ownerID, request)
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.deltaSync").Msg("error serving delta sync page")
		http.Error(w, "error serving delta sync page", statusFromError(err))
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) applyChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, found := utils.GetOwnerIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.applyChanges").Msg("no owner ID was given")
		http.Error(w, "no owner ID was given", http.StatusBadRequest)
		return
	}

	var request models.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.applyChanges").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result, err := h.services.ApplyService.Apply(ctx, ownerID, request)
	if err != nil {
		log.Error().Err(err).Str("func", "*Handler.applyChanges").Msg("error applying changes")
		http.Error(w, "error applying changes", statusFromError(err))
		return
	}

	// Conflicts are a normal outcome of concurrent editing, not an HTTP
	// failure: the batch itself succeeded.
	utils.WriteJSON(w, result, http.StatusOK)
}
