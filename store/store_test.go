// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/querydesk/models"
	"github.com/danielhkuo/querydesk/store"
	"github.com/danielhkuo/querydesk/testutil"
)

func newQuery(formDataID, title string) models.Query {
	now := time.Now().UTC()
	return models.Query{
		ID:         uuid.NewString(),
		Title:      title,
		Status:     models.StatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
		FormDataID: formDataID,
	}
}

func TestListFormDataWithQueries(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.New(conn)
	ctx := context.Background()

	fd1 := testutil.CreateTestFormData(t, conn, "Q1", "A1")
	fd2 := testutil.CreateTestFormData(t, conn, "Q2", "A2")
	q1 := testutil.CreateTestQuery(t, conn, fd1, "first", models.StatusOpen)
	q2 := testutil.CreateTestQuery(t, conn, fd1, "second", models.StatusResolved)

	entries, err := s.ListFormDataWithQueries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].ID != fd1 || entries[1].ID != fd2 {
		t.Errorf("entries out of order: %s, %s", entries[0].ID, entries[1].ID)
	}
	if len(entries[0].Queries) != 2 {
		t.Fatalf("expected 2 queries under fd1, got %d", len(entries[0].Queries))
	}
	if entries[0].Queries[0].ID != q1 || entries[0].Queries[1].ID != q2 {
		t.Error("queries out of creation order")
	}
	if entries[0].Queries[1].Status != models.StatusResolved {
		t.Errorf("expected RESOLVED, got %s", entries[0].Queries[1].Status)
	}
	if entries[0].Queries[0].Description != nil {
		t.Error("expected nil description")
	}
	if entries[1].Queries == nil || len(entries[1].Queries) != 0 {
		t.Errorf("expected empty non-nil queries for fd2, got %#v", entries[1].Queries)
	}
}

func TestListFormDataEmpty(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	entries, err := store.New(conn).ListFormDataWithQueries(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty slice, got %#v", entries)
	}
}

func TestInsertQuery(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.New(conn)
	ctx := context.Background()

	fd := testutil.CreateTestFormData(t, conn, "Q", "A")
	desc := "needs clarification"
	q := newQuery(fd, "Allergy check")
	q.Description = &desc

	created, err := s.InsertQuery(ctx, q)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.ID != q.ID || created.FormDataID != fd || created.Status != models.StatusOpen {
		t.Errorf("unexpected row %+v", created)
	}
	if created.Description == nil || *created.Description != desc {
		t.Errorf("description not stored: %v", created.Description)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("timestamps not populated")
	}
	if created.CreatedBy != nil {
		t.Error("createdBy should be absent")
	}
}

func TestInsertQueryUnknownFormData(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.New(conn)

	_, err := s.InsertQuery(context.Background(), newQuery("does-not-exist", "x"))
	if err == nil {
		t.Fatal("expected foreign key error")
	}
	if n := testutil.CountQueries(t, conn); n != 0 {
		t.Errorf("expected no rows inserted, got %d", n)
	}
}

func TestResolveQuery(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.New(conn)
	ctx := context.Background()

	fd := testutil.CreateTestFormData(t, conn, "Q", "A")
	id := testutil.CreateTestQuery(t, conn, fd, "t", models.StatusOpen)

	at := time.Now().UTC().Add(time.Minute)
	for i := 0; i < 2; i++ {
		q, err := s.ResolveQuery(ctx, id, at)
		if err != nil {
			t.Fatalf("resolve #%d: %v", i+1, err)
		}
		if q.Status != models.StatusResolved {
			t.Errorf("resolve #%d: expected RESOLVED, got %s", i+1, q.Status)
		}
		if !q.UpdatedAt.After(q.CreatedAt) {
			t.Errorf("resolve #%d: updatedAt not refreshed", i+1)
		}
	}

	if _, err := s.ResolveQuery(ctx, "missing", at); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateQueryDescription(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.New(conn)
	ctx := context.Background()

	fd := testutil.CreateTestFormData(t, conn, "Q", "A")
	open := testutil.CreateTestQuery(t, conn, fd, "open", models.StatusOpen)
	resolved := testutil.CreateTestQuery(t, conn, fd, "resolved", models.StatusResolved)

	desc := "updated"
	q, err := s.UpdateQueryDescription(ctx, open, &desc, time.Now().UTC())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if q.Description == nil || *q.Description != desc {
		t.Errorf("description not updated: %v", q.Description)
	}
	if q.Title != "open" {
		t.Errorf("title must not change, got %q", q.Title)
	}

	if _, err := s.UpdateQueryDescription(ctx, resolved, &desc, time.Now().UTC()); !errors.Is(err, store.ErrQueryResolved) {
		t.Errorf("expected ErrQueryResolved, got %v", err)
	}
	if _, err := s.UpdateQueryDescription(ctx, "missing", &desc, time.Now().UTC()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteQuery(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := store.New(conn)
	ctx := context.Background()

	fd := testutil.CreateTestFormData(t, conn, "Q", "A")
	id := testutil.CreateTestQuery(t, conn, fd, "t", models.StatusOpen)

	if err := s.DeleteQuery(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if status := testutil.QueryStatus(t, conn, id); status != "" {
		t.Errorf("query still present with status %s", status)
	}
	if err := s.DeleteQuery(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := s.GetQuery(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound from GetQuery, got %v", err)
	}
}
