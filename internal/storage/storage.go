package storage

import (
	"sync"

	"github.com/imagesleuth/imagesleuth/internal/models"
)

// ReportStore keeps recent analysis reports in memory. Nothing is
// persisted; restarting the process drops all reports.
type ReportStore struct {
	reports map[string]*models.AnalysisReport
	order   []string
	limit   int
	mu      sync.RWMutex
}

// DefaultLimit caps how many reports are retained before the oldest is
// evicted.
const DefaultLimit = 100

func New() *ReportStore {
	return &ReportStore{
		reports: make(map[string]*models.AnalysisReport),
		limit:   DefaultLimit,
	}
}

func (s *ReportStore) Get(id string) (*models.AnalysisReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, exists := s.reports[id]
	return report, exists
}

func (s *ReportStore) Set(id string, report *models.AnalysisReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[id]; !exists {
		s.order = append(s.order, id)
	}
	s.reports[id] = report

	for len(s.order) > s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.reports, oldest)
	}
}

// GetAll returns the retained reports, oldest first.
func (s *ReportStore) GetAll() []*models.AnalysisReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.AnalysisReport, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.reports[id])
	}
	return result
}

func (s *ReportStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[id]; !exists {
		return
	}
	delete(s.reports, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
