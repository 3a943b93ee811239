package review

import (
	"time"

	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/model"
)

// State is everything the review dashboard shows: the fetched records, the
// active search, the current page and the record opened in the detail view.
// It is owned by one admin session and passed around explicitly.
type State struct {
	pageSize     int
	applications []model.JobApplication
	filtered     []model.JobApplication
	search       string
	page         int
	selectedID   string
}

func NewState(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{pageSize: pageSize, page: 1}
}

// SetApplications replaces the record set, re-applies the search and goes
// back to page 1.
func (s *State) SetApplications(apps []model.JobApplication) {
	s.applications = apps
	s.refilter()
}

// SetSearch changes the search term; the filter is recomputed and the
// page reset to 1.
func (s *State) SetSearch(term string) {
	s.search = term
	s.refilter()
}

func (s *State) refilter() {
	s.filtered = Filter(s.applications, s.search)
	s.page = 1
}

func (s *State) Search() string                       { return s.search }
func (s *State) Page() int                            { return s.page }
func (s *State) PageSize() int                        { return s.pageSize }
func (s *State) Applications() []model.JobApplication { return s.applications }
func (s *State) Filtered() []model.JobApplication     { return s.filtered }

func (s *State) TotalPages() int {
	return PageCount(len(s.filtered), s.pageSize)
}

func (s *State) GoToPage(page int) {
	s.page = ClampPage(page, s.TotalPages())
}

func (s *State) NextPage() { s.GoToPage(s.page + 1) }
func (s *State) PrevPage() { s.GoToPage(s.page - 1) }

func (s *State) PageItems() []model.JobApplication {
	return Paginate(s.filtered, s.page, s.pageSize)
}

// Select opens the detail view for id. It reports false when the id is not
// in the current record set.
func (s *State) Select(id string) bool {
	if s.find(id) < 0 {
		return false
	}
	s.selectedID = id
	return true
}

func (s *State) ClearSelection() {
	s.selectedID = ""
}

// Selected returns the record shown in the detail view.
func (s *State) Selected() (model.JobApplication, bool) {
	i := s.find(s.selectedID)
	if s.selectedID == "" || i < 0 {
		return model.JobApplication{}, false
	}
	return s.applications[i], true
}

// ApplyStatus updates the in-memory copy of a record after the server
// accepted the change. The detail view reads from the same slice, so list
// and detail always agree.
func (s *State) ApplyStatus(id string, status model.Status) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	s.applications[i].Status = status
	for j := range s.filtered {
		if s.filtered[j].ID.String() == id {
			s.filtered[j].Status = status
		}
	}
	return true
}

func (s *State) Stats(now time.Time) dto.ApplicationStatsDTO {
	return Summarize(s.applications, now)
}

// Reset drops everything, as on logout.
func (s *State) Reset() {
	*s = State{pageSize: s.pageSize, page: 1}
}

func (s *State) find(id string) int {
	for i := range s.applications {
		if s.applications[i].ID.String() == id {
			return i
		}
	}
	return -1
}
