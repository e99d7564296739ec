package storage

import (
	"context"
	"sync"

	"github.com/Adidadi0112/peptide-opt/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunRecord
	progress    map[string][]model.GenerationStats
	traces      map[string][]model.TracePoint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	s.progress = make(map[string][]model.GenerationStats)
	s.traces = make(map[string][]model.TracePoint)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.RunID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) SaveProgress(_ context.Context, runID string, progress []model.GenerationStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.GenerationStats, len(progress))
	copy(copied, progress)
	s.progress[runID] = copied
	return nil
}

func (s *MemoryStore) GetProgress(_ context.Context, runID string) ([]model.GenerationStats, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	progress, ok := s.progress[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.GenerationStats, len(progress))
	copy(copied, progress)
	return copied, true, nil
}

func (s *MemoryStore) SaveTrace(_ context.Context, runID string, trace []model.TracePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.TracePoint, len(trace))
	copy(copied, trace)
	s.traces[runID] = copied
	return nil
}

func (s *MemoryStore) GetTrace(_ context.Context, runID string) ([]model.TracePoint, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trace, ok := s.traces[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.TracePoint, len(trace))
	copy(copied, trace)
	return copied, true, nil
}
