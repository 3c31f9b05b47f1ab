// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/querydesk/client"
	"github.com/danielhkuo/querydesk/models"
)

var (
	ErrActionInFlight    = errors.New("another action is in progress")
	ErrActionUnavailable = errors.New("action is not available")
	ErrBlankDescription  = errors.New("description must not be blank")
	ErrHasQueries        = errors.New("form entry already has queries")
	ErrModalClosed       = errors.New("modal is closed")
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

type Action string

const (
	ActionDelete  Action = "delete"
	ActionCancel  Action = "cancel"
	ActionResolve Action = "resolve"
	ActionSave    Action = "save"
)

// QueryAPI is the part of *client.Client the modal drives
type QueryAPI interface {
	CreateQuery(ctx context.Context, req models.CreateQueryRequest) (models.Query, error)
	ResolveQuery(ctx context.Context, id string) (models.Query, error)
	UpdateQueryDescription(ctx context.Context, id, description string) (models.Query, error)
	DeleteQuery(ctx context.Context, id string) error
}

// Refresher refetches the listing after a successful action
type Refresher interface {
	Revalidate(ctx context.Context) client.Snapshot
}

// Modal creates a query for a form entry or edits an existing one.
// One action runs at a time; a success revalidates the listing and closes
// the modal.
type Modal struct {
	api       QueryAPI
	refresher Refresher
	notify    Notifier
	now       func() time.Time

	mode     Mode
	formData models.FormData
	query    models.Query

	mu          sync.Mutex
	description string
	inFlight    Action
	open        bool
}

// NewCreateModal opens create mode for a form entry with no queries
func NewCreateModal(api QueryAPI, refresher Refresher, notify Notifier, fd models.FormData) (*Modal, error) {
	if len(fd.Queries) > 0 {
		return nil, ErrHasQueries
	}
	return &Modal{
		api:       api,
		refresher: refresher,
		notify:    notify,
		now:       time.Now,
		mode:      ModeCreate,
		formData:  fd,
		open:      true,
	}, nil
}

// NewEditModal opens edit mode for an existing query
func NewEditModal(api QueryAPI, refresher Refresher, notify Notifier, q models.Query) *Modal {
	m := &Modal{
		api:       api,
		refresher: refresher,
		notify:    notify,
		now:       time.Now,
		mode:      ModeEdit,
		query:     q,
		open:      true,
	}
	if q.Description != nil {
		m.description = *q.Description
	}
	return m
}

func (m *Modal) Mode() Mode { return m.mode }

func (m *Modal) Title() string {
	if m.mode == ModeEdit {
		return "Query Details"
	}
	return "Create New Query"
}

func (m *Modal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *Modal) resolved() bool {
	return m.mode == ModeEdit && m.query.Resolved()
}

// Resolved reports whether the modal edits a resolved query
func (m *Modal) Resolved() bool { return m.resolved() }

// Actions lists the visible actions in display order
func (m *Modal) Actions() []Action {
	switch {
	case m.mode == ModeCreate:
		return []Action{ActionCancel, ActionSave}
	case m.resolved():
		return []Action{ActionDelete, ActionCancel}
	default:
		return []Action{ActionDelete, ActionCancel, ActionResolve, ActionSave}
	}
}

func (m *Modal) visible(a Action) bool {
	for _, v := range m.Actions() {
		if v == a {
			return true
		}
	}
	return false
}

// Enabled reports whether a visible action can be triggered right now
func (m *Modal) Enabled(a Action) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open && m.inFlight == "" && m.visible(a) &&
		(a != ActionSave || strings.TrimSpace(m.description) != "")
}

// DescriptionEditable is false once resolved and while an action runs
func (m *Modal) DescriptionEditable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open && !m.resolved() && m.inFlight == ""
}

func (m *Modal) Description() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.description
}

func (m *Modal) SetDescription(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open || m.resolved() || m.inFlight != "" {
		return ErrActionUnavailable
	}
	m.description = s
	return nil
}

// Cancel closes the modal unless an action is running
func (m *Modal) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inFlight != "" {
		return ErrActionInFlight
	}
	m.open = false
	return nil
}

// Save creates the query in create mode and updates its description in
// edit mode
func (m *Modal) Save(ctx context.Context) error {
	desc := m.Description()
	if strings.TrimSpace(desc) == "" {
		return ErrBlankDescription
	}

	if m.mode == ModeCreate {
		return m.run(ctx, ActionSave, Toast{Title: "Query Created", Message: "Your query has been created successfully."}, func() error {
			_, err := m.api.CreateQuery(ctx, models.CreateQueryRequest{
				Title:       m.formData.Question,
				FormDataID:  m.formData.ID,
				Description: &desc,
			})
			return err
		})
	}

	return m.run(ctx, ActionSave, Toast{Title: "Query Updated", Message: "The query has been updated successfully."}, func() error {
		_, err := m.api.UpdateQueryDescription(ctx, m.query.ID, desc)
		return err
	})
}

func (m *Modal) Resolve(ctx context.Context) error {
	return m.run(ctx, ActionResolve, Toast{Title: "Query Resolved", Message: "The query has been marked as resolved."}, func() error {
		_, err := m.api.ResolveQuery(ctx, m.query.ID)
		return err
	})
}

func (m *Modal) Delete(ctx context.Context) error {
	if m.mode == ModeEdit && m.query.ID == "" {
		m.notify(Toast{Kind: ToastError, Title: "Error", Message: "Query ID is missing."})
		return ErrActionUnavailable
	}
	return m.run(ctx, ActionDelete, Toast{Title: "Query Deleted", Message: "The query has been deleted successfully."}, func() error {
		return m.api.DeleteQuery(ctx, m.query.ID)
	})
}

func (m *Modal) run(ctx context.Context, a Action, success Toast, call func() error) error {
	m.mu.Lock()
	switch {
	case !m.open:
		m.mu.Unlock()
		return ErrModalClosed
	case m.inFlight != "":
		m.mu.Unlock()
		return ErrActionInFlight
	case !m.visible(a):
		m.mu.Unlock()
		return ErrActionUnavailable
	}
	m.inFlight = a
	m.mu.Unlock()

	err := call()

	m.mu.Lock()
	m.inFlight = ""
	m.mu.Unlock()

	if err != nil {
		m.notify(Toast{Kind: ToastError, Title: "Error", Message: errorMessage(err)})
		return err
	}

	m.notify(success)
	if snap := m.refresher.Revalidate(ctx); snap.State == client.StateError {
		m.notify(Toast{Kind: ToastError, Title: "Error", Message: "Failed to refresh the table. Please try again."})
	}

	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
	return nil
}

// Render writes the modal as text
func (m *Modal) Render(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", m.Title())

	if m.mode == ModeEdit {
		q := m.query
		createdBy := "User"
		if q.CreatedBy != nil && *q.CreatedBy != "" {
			createdBy = *q.CreatedBy
		}
		now := m.now()
		fmt.Fprintf(&b, "Status:     %s\n", Badge(q.Status))
		fmt.Fprintf(&b, "Relates to: %q\n", q.Title)
		fmt.Fprintf(&b, "Created by %s %s\n", createdBy, humanize.RelTime(q.CreatedAt, now, "ago", "from now"))
		fmt.Fprintf(&b, "Updated %s\n", humanize.RelTime(q.UpdatedAt, now, "ago", "from now"))
	} else {
		fmt.Fprintf(&b, "Related Question: %q\n", m.formData.Question)
	}

	desc := m.Description()
	if desc == "" {
		desc = "(empty)"
	}
	label := "Description / Question for Team"
	if m.mode == ModeEdit {
		label = "Query Description"
	}
	if !m.DescriptionEditable() {
		label += " (read only)"
	}
	fmt.Fprintf(&b, "%s:\n  %s\n", label, desc)

	actions := make([]string, 0, 4)
	for _, a := range m.Actions() {
		name := string(a)
		if !m.Enabled(a) {
			name += " (disabled)"
		}
		actions = append(actions, name)
	}
	fmt.Fprintf(&b, "Actions: %s\n", strings.Join(actions, " | "))

	_, err := io.WriteString(w, b.String())
	return err
}

func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return "An error occurred."
	}
	return err.Error()
}
