// Package review holds the admin-side logic for browsing applications:
// search, pagination, statistics and the dashboard state, plus a client for
// the review API.
package review

import (
	"strings"
	"time"

	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/model"
)

// DefaultPageSize matches the dashboard table; AltPageSize is the roomier
// variant.
const (
	DefaultPageSize = 8
	AltPageSize     = 10
)

// Filter keeps the applications whose name, email, phone number or residence
// contains term, ignoring case. A blank term keeps everything. Order is
// preserved.
func Filter(apps []model.JobApplication, term string) []model.JobApplication {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return apps
	}

	out := make([]model.JobApplication, 0, len(apps))
	for _, app := range apps {
		if Matches(app, term) {
			out = append(out, app)
		}
	}
	return out
}

// Matches expects term to be lower-cased already.
func Matches(app model.JobApplication, term string) bool {
	for _, field := range []string{app.Name, app.Email, app.PhoneNumber, app.CurrentResidence} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// PageCount is ceil(n / size).
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage keeps page inside [1, pageCount]; with no pages it is 1.
func ClampPage(page, pageCount int) int {
	if page > pageCount {
		page = pageCount
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the items on the given 1-based page after clamping it.
func Paginate(apps []model.JobApplication, page, size int) []model.JobApplication {
	if size <= 0 {
		size = DefaultPageSize
	}
	page = ClampPage(page, PageCount(len(apps), size))
	start := (page - 1) * size
	if start >= len(apps) {
		return []model.JobApplication{}
	}
	end := start + size
	if end > len(apps) {
		end = len(apps)
	}
	return apps[start:end]
}

// Summarize computes the dashboard counters. "This month" is the calendar
// month of now in now's location.
func Summarize(apps []model.JobApplication, now time.Time) dto.ApplicationStatsDTO {
	stats := dto.ApplicationStatsDTO{Total: len(apps)}
	year, month, _ := now.Date()
	for i := range apps {
		app := &apps[i]
		if app.HasCoverLetter() {
			stats.WithCoverLetter++
		}
		if app.CV().Present() {
			stats.WithCV++
		}
		y, m, _ := app.CreatedAt.In(now.Location()).Date()
		if y == year && m == month {
			stats.ThisMonth++
		}
	}
	return stats
}
