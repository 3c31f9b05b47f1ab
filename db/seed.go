// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeedEntry is a question/answer pair inserted by Seed
type SeedEntry struct {
	Question string
	Answer   string
}

// SampleFormData is the medical-history questionnaire used for demos
var SampleFormData = []SeedEntry{
	{"Do you have any history of chronic diseases, such as diabetes, hypertension, or cardiovascular diseases?", "No"},
	{"Are you currently taking any prescription medications?", "Yes, antihypertensive medication"},
	{"Have you ever had an allergic reaction to any medications?", "Yes, I am allergic to penicillin."},
	{"Do you smoke tobacco or use any nicotine products?", "No"},
	{"Do you regularly exercise or engage in physical activity?", "Yes, I walk for 30 minutes every day."},
	{"Do you have a family history of cancer?", "Yes, my mother had breast cancer."},
	{"Have you ever been hospitalized for any reason?", "Yes, I was hospitalized for surgery in 2019."},
	{"Do you have any known food allergies?", "No"},
	{"Do you experience any frequent or chronic headaches?", "No"},
	{"Do you have any problems with your vision, such as blurred vision or eye strain?", "Occasionally, I experience eye strain after long periods of screen use."},
}

// Seed inserts entries into form_data when the table is empty and returns
// how many rows were written. A non-empty catalogue is left untouched.
func Seed(ctx context.Context, conn *sql.DB, entries []SeedEntry) (int, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM form_data").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count form data: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	// distinct timestamps keep the listing in seed order
	base := time.Now().UTC()
	for i, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO form_data (id, question, answer, created_at)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), e.Question, e.Answer, base.Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			return 0, fmt.Errorf("failed to insert form data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(entries), nil
}
