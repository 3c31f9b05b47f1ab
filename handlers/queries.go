// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/querydesk/apierr"
	"github.com/danielhkuo/querydesk/middleware"
	"github.com/danielhkuo/querydesk/models"
	"github.com/danielhkuo/querydesk/services"
)

type QueryManager interface {
	Create(ctx context.Context, req models.CreateQueryRequest) (models.Query, error)
	Resolve(ctx context.Context, id string) (models.Query, error)
	UpdateDescription(ctx context.Context, id string, req models.UpdateQueryRequest) (models.Query, error)
	Delete(ctx context.Context, id string) error
}

type QueryHandler struct {
	service QueryManager
}

func NewQueryHandler(service QueryManager) *QueryHandler {
	return &QueryHandler{service: service}
}

// Create handles POST /queries. The body has already been validated.
func (h *QueryHandler) Create(w http.ResponseWriter, r *http.Request) error {
	req, ok := middleware.Body[models.CreateQueryRequest](r)
	if !ok {
		return apierr.New(services.MsgCreateFailed, apierr.BadRequest)
	}

	q, err := h.service.Create(r.Context(), req)
	if err != nil {
		return err
	}

	middleware.JSON(w, r, http.StatusCreated, q)
	return nil
}

// Resolve handles PATCH /queries/{id}
func (h *QueryHandler) Resolve(w http.ResponseWriter, r *http.Request) error {
	q, err := h.service.Resolve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}

	middleware.JSON(w, r, http.StatusOK, q)
	return nil
}

// UpdateDescription handles PUT /queries/{id}
func (h *QueryHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) error {
	req, ok := middleware.Body[models.UpdateQueryRequest](r)
	if !ok {
		return apierr.New(services.MsgUpdateFailed, apierr.BadRequest)
	}

	q, err := h.service.UpdateDescription(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		return err
	}

	middleware.JSON(w, r, http.StatusOK, q)
	return nil
}

// Delete handles DELETE /queries/{id}
func (h *QueryHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}

	middleware.NoContent(w, r)
	return nil
}
