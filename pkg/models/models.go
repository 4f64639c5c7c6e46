// Package models defines data structures shared across the application.
package models

// Issue is an open ticket normalized from any supported tracker.
type Issue struct {
	// Created is the creation date as reported by the tracker (e.g. "2023-02-01")
	Created string

	// Title is the ticket's title or summary
	Title string

	// URL is the absolute link to the ticket on its originating tracker
	URL string
}

// Section groups the open issues fetched from a single tracker.
type Section struct {
	// Project is the display label of the tracker
	Project string

	// Issues are the tracker's open issues in the order the tracker returned them
	Issues []Issue
}
