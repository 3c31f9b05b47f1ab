// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/danielhkuo/querydesk/client"
	"github.com/danielhkuo/querydesk/models"
)

const EmptyListing = "No form data available to display."

var (
	openBadge     = color.New(color.FgRed)
	resolvedBadge = color.New(color.FgCyan)
	createBadge   = color.New(color.FgBlue)
)

// Badge renders a query status the way the table shows it
func Badge(status models.QueryStatus) string {
	if status == models.StatusResolved {
		return resolvedBadge.Sprint("✓ resolved")
	}
	return openBadge.Sprint("? open")
}

// RenderSnapshot draws the listing in whatever state the cache is in
func RenderSnapshot(w io.Writer, snap client.Snapshot) error {
	switch snap.State {
	case client.StateLoading:
		_, err := fmt.Fprintln(w, "Loading…")
		return err
	case client.StateError:
		_, err := fmt.Fprintf(w, "%s Failed to load data: %s\n", openBadge.Sprint("Error Loading Data."), errorMessage(snap.Err))
		return err
	default:
		return RenderTable(w, snap.Data)
	}
}

// RenderTable writes one row per form entry. Badges go in the last column
// so color codes never skew the alignment.
func RenderTable(w io.Writer, list models.FormDataList) error {
	if len(list.FormData) == 0 {
		_, err := fmt.Fprintln(w, EmptyListing)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tQUESTION\tANSWER\tQUERIES")
	fmt.Fprintln(tw, "--\t--------\t------\t-------")
	for _, fd := range list.FormData {
		answer := fd.Answer
		if strings.TrimSpace(answer) == "" {
			answer = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", fd.ID, fd.Question, answer, queriesCell(fd.Queries))
	}
	return tw.Flush()
}

func queriesCell(queries []models.Query) string {
	if len(queries) == 0 {
		return createBadge.Sprint("+ create")
	}
	badges := make([]string, 0, len(queries))
	for _, q := range queries {
		badges = append(badges, fmt.Sprintf("%s %s", Badge(q.Status), q.ID))
	}
	return strings.Join(badges, ", ")
}

// FindFormData returns the entry with the given id
func FindFormData(list models.FormDataList, id string) (models.FormData, bool) {
	for _, fd := range list.FormData {
		if fd.ID == id {
			return fd, true
		}
	}
	return models.FormData{}, false
}

// FindQuery returns the query with the given id and its parent entry
func FindQuery(list models.FormDataList, id string) (models.Query, models.FormData, bool) {
	for _, fd := range list.FormData {
		for _, q := range fd.Queries {
			if q.ID == id {
				return q, fd, true
			}
		}
	}
	return models.Query{}, models.FormData{}, false
}
