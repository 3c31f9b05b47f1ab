// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/querydesk/models"
)

// countingServer serves a listing whose total is the number of requests so
// far, or a 400 while fail is set
func countingServer(t *testing.T, fail *atomic.Bool) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if fail != nil && fail.Load() {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{Message: "failed to fetch form data", StatusCode: 400})
			return
		}
		json.NewEncoder(w).Encode(models.FormDataList{Total: int(n), FormData: []models.FormData{}})
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFormDataResource_LoadOnce(t *testing.T) {
	srv, hits := countingServer(t, nil)
	res := NewFormDataResource(New(srv.URL), NewCache())

	if s := res.State(); s.State != StateLoading {
		t.Errorf("Expected loading before first fetch, got %s", s.State)
	}

	first := res.Load(context.Background())
	second := res.Load(context.Background())

	if first.State != StateSuccess || second.State != StateSuccess {
		t.Fatalf("Expected success, got %s and %s", first.State, second.State)
	}
	if hits.Load() != 1 {
		t.Errorf("Expected a single fetch, got %d", hits.Load())
	}
	if second.Data.Total != 1 {
		t.Errorf("Expected cached data, got total %d", second.Data.Total)
	}
}

func TestFormDataResource_Revalidate(t *testing.T) {
	srv, hits := countingServer(t, nil)
	res := NewFormDataResource(New(srv.URL), NewCache())

	res.Load(context.Background())
	snap := res.Revalidate(context.Background())

	if hits.Load() != 2 {
		t.Errorf("Expected a refetch, got %d requests", hits.Load())
	}
	if snap.State != StateSuccess || snap.Data.Total != 2 {
		t.Errorf("Expected fresh data, got %+v", snap)
	}
	if res.State().Data.Total != 2 {
		t.Errorf("Expected state to reflect the refetch, got %+v", res.State())
	}
}

func TestFormDataResource_ErrorState(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv, _ := countingServer(t, &fail)
	res := NewFormDataResource(New(srv.URL), NewCache())

	snap := res.Load(context.Background())
	if snap.State != StateError {
		t.Fatalf("Expected error state, got %s", snap.State)
	}
	if snap.Err == nil || snap.Err.(*APIError).Message != "failed to fetch form data" {
		t.Errorf("Expected server message, got %v", snap.Err)
	}

	fail.Store(false)
	if snap := res.Revalidate(context.Background()); snap.State != StateSuccess {
		t.Errorf("Expected success after revalidate, got %s", snap.State)
	}
}

func TestCache_KeyedByURL(t *testing.T) {
	srvA, hitsA := countingServer(t, nil)
	srvB, hitsB := countingServer(t, nil)
	cache := NewCache()

	a := NewFormDataResource(New(srvA.URL), cache)
	b := NewFormDataResource(New(srvB.URL), cache)
	a.Load(context.Background())
	b.Load(context.Background())

	cache.Invalidate(New(srvA.URL).FormDataURL())
	if a.State().State != StateLoading {
		t.Errorf("Expected invalidated entry to be loading, got %s", a.State().State)
	}
	if b.State().State != StateSuccess {
		t.Errorf("Expected other entry to survive, got %s", b.State().State)
	}
	if hitsA.Load() != 1 || hitsB.Load() != 1 {
		t.Errorf("Expected one fetch per server, got %d and %d", hitsA.Load(), hitsB.Load())
	}
}
