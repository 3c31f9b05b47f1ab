// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/querydesk/apierr"
	"github.com/danielhkuo/querydesk/logging"
	"github.com/danielhkuo/querydesk/middleware"
	"github.com/danielhkuo/querydesk/models"
	"github.com/danielhkuo/querydesk/services"
	"github.com/danielhkuo/querydesk/testutil"
)

type fakeFormDataLister struct {
	list models.FormDataList
	err  error
}

func (f *fakeFormDataLister) List(ctx context.Context) (models.FormDataList, error) {
	return f.list, f.err
}

type failingShaper struct{}

func (failingShaper) Shape(v any) (any, error) {
	return nil, errors.New("cannot shape")
}

func serveList(h *FormDataHandler) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	Wrap(apierr.NewJSONErrorHandler(logging.Discard()), h.List)(w, httptest.NewRequest("GET", "/form-data", nil))
	return w
}

func TestListFormData(t *testing.T) {
	svc := &fakeFormDataLister{list: models.FormDataList{
		Total: 1,
		FormData: []models.FormData{
			{ID: "fd-1", Question: "Age?", Answer: "42", Queries: []models.Query{}},
		},
	}}

	w := serveList(NewFormDataHandler(svc, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var list models.FormDataList
	testutil.AssertJSON(t, w, &list)
	if list.Total != len(list.FormData) || list.Total != 1 {
		t.Errorf("Expected total 1 matching formData length, got %+v", list)
	}
}

func TestListFormData_Redacted(t *testing.T) {
	svc := &fakeFormDataLister{list: models.FormDataList{
		Total:    1,
		FormData: []models.FormData{{ID: "fd-1", Question: "Age?", Answer: "42", Queries: []models.Query{}}},
	}}

	w := serveList(NewFormDataHandler(svc, middleware.NewReplyShaper([]string{"answer"})))

	testutil.AssertStatus(t, w, http.StatusOK)
	if strings.Contains(w.Body.String(), `"answer"`) {
		t.Errorf("Expected answer to be redacted, got %s", w.Body.String())
	}
}

func TestListFormData_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler *FormDataHandler
		status  int
		message string
	}{
		{
			name:    "service failure",
			handler: NewFormDataHandler(&fakeFormDataLister{err: apierr.New(services.MsgFetchFailed, apierr.BadRequest)}, nil),
			status:  http.StatusBadRequest,
			message: services.MsgFetchFailed,
		},
		{
			name:    "shaper failure",
			handler: NewFormDataHandler(&fakeFormDataLister{}, failingShaper{}),
			status:  http.StatusInternalServerError,
			message: apierr.UnexpectedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveList(tt.handler)

			testutil.AssertStatus(t, w, tt.status)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Message != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, resp.Message)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest("GET", "/health", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got %q", w.Body.String())
	}
}
