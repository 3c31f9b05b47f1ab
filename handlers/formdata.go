// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielhkuo/querydesk/middleware"
	"github.com/danielhkuo/querydesk/models"
)

type FormDataLister interface {
	List(ctx context.Context) (models.FormDataList, error)
}

type FormDataHandler struct {
	service FormDataLister
	shaper  middleware.ReplyShaper
}

func NewFormDataHandler(service FormDataLister, shaper middleware.ReplyShaper) *FormDataHandler {
	if shaper == nil {
		shaper = middleware.PassThrough{}
	}
	return &FormDataHandler{service: service, shaper: shaper}
}

// List handles GET /form-data
func (h *FormDataHandler) List(w http.ResponseWriter, r *http.Request) error {
	list, err := h.service.List(r.Context())
	if err != nil {
		return err
	}

	payload, err := h.shaper.Shape(list)
	if err != nil {
		return fmt.Errorf("shape form data reply: %w", err)
	}

	middleware.JSON(w, r, http.StatusOK, payload)
	return nil
}
