// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/danielhkuo/querydesk/apierr"
	"github.com/danielhkuo/querydesk/logging"
	"github.com/danielhkuo/querydesk/models"
)

const MsgFetchFailed = "failed to fetch form data"

type FormDataStore interface {
	ListFormDataWithQueries(ctx context.Context) ([]models.FormData, error)
}

type FormDataService struct {
	store FormDataStore
	log   *logrus.Entry
}

func NewFormDataService(store FormDataStore, logger logrus.FieldLogger) *FormDataService {
	return &FormDataService{
		store: store,
		log:   logging.Component(logger, "formDataRoutes"),
	}
}

// List returns every form entry with its queries; Total always equals
// len(FormData)
func (s *FormDataService) List(ctx context.Context) (models.FormDataList, error) {
	entries, err := s.store.ListFormDataWithQueries(ctx)
	if err != nil {
		s.log.WithError(err).Error("could not load form data")
		return models.FormDataList{}, apierr.New(MsgFetchFailed, apierr.BadRequest)
	}

	for i := range entries {
		if entries[i].Queries == nil {
			entries[i].Queries = []models.Query{}
		}
	}
	if entries == nil {
		entries = []models.FormData{}
	}

	return models.FormDataList{Total: len(entries), FormData: entries}, nil
}
