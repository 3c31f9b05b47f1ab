// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/danielhkuo/querydesk/apierr"
	"github.com/danielhkuo/querydesk/logging"
	"github.com/danielhkuo/querydesk/models"
)

const (
	MsgCreateFailed  = "failed to create query"
	MsgResolveFailed = "failed to resolve query"
	MsgUpdateFailed  = "failed to update query"
	MsgDeleteFailed  = "failed to delete query"
)

type QueryStore interface {
	InsertQuery(ctx context.Context, q models.Query) (models.Query, error)
	ResolveQuery(ctx context.Context, id string, at time.Time) (models.Query, error)
	UpdateQueryDescription(ctx context.Context, id string, description *string, at time.Time) (models.Query, error)
	DeleteQuery(ctx context.Context, id string) error
}

type QueryService struct {
	store QueryStore
	log   *logrus.Entry
	now   func() time.Time
	newID func() string
}

func NewQueryService(store QueryStore, logger logrus.FieldLogger) *QueryService {
	return &QueryService{
		store: store,
		log:   logging.Component(logger, "queryRoutes"),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Create inserts a new OPEN query tied to req.FormDataID
func (s *QueryService) Create(ctx context.Context, req models.CreateQueryRequest) (models.Query, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.FormDataID) == "" {
		return models.Query{}, apierr.New(MsgCreateFailed, apierr.BadRequest)
	}

	now := s.now()
	q, err := s.store.InsertQuery(ctx, models.Query{
		ID:          s.newID(),
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
		FormDataID:  req.FormDataID,
	})
	if err != nil {
		s.log.WithError(err).WithField("form_data_id", req.FormDataID).Debug("create query failed")
		return models.Query{}, apierr.New(MsgCreateFailed, apierr.BadRequest)
	}

	s.log.WithFields(logrus.Fields{"query_id": q.ID, "form_data_id": q.FormDataID}).Info("query created")
	return q, nil
}

// Resolve marks the query RESOLVED without looking at its current status,
// so resolving twice succeeds both times
func (s *QueryService) Resolve(ctx context.Context, id string) (models.Query, error) {
	q, err := s.store.ResolveQuery(ctx, id, s.now())
	if err != nil {
		s.log.WithError(err).WithField("query_id", id).Debug("resolve query failed")
		return models.Query{}, apierr.New(MsgResolveFailed, apierr.BadRequest)
	}

	s.log.WithField("query_id", id).Info("query resolved")
	return q, nil
}

// UpdateDescription edits the description of an OPEN query
func (s *QueryService) UpdateDescription(ctx context.Context, id string, req models.UpdateQueryRequest) (models.Query, error) {
	q, err := s.store.UpdateQueryDescription(ctx, id, req.Description, s.now())
	if err != nil {
		s.log.WithError(err).WithField("query_id", id).Debug("update query failed")
		return models.Query{}, apierr.New(MsgUpdateFailed, apierr.BadRequest)
	}

	s.log.WithField("query_id", id).Info("query updated")
	return q, nil
}

// Delete removes the query permanently
func (s *QueryService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteQuery(ctx, id); err != nil {
		s.log.WithError(err).WithField("query_id", id).Debug("delete query failed")
		return apierr.New(MsgDeleteFailed, apierr.BadRequest)
	}

	s.log.WithField("query_id", id).Info("query deleted")
	return nil
}
