package screening

import (
	"context"
	"sync"
)

// MemoryResumeRepo is an in-memory implementation of ResumeRepo.
type MemoryResumeRepo struct {
	mu   sync.RWMutex
	data map[string][]Resume // sessionId -> resumes, upload order
}

// NewMemoryResumeRepo constructs a MemoryResumeRepo.
func NewMemoryResumeRepo() *MemoryResumeRepo {
	return &MemoryResumeRepo{data: make(map[string][]Resume)}
}

// Add appends a resume record for a session.
func (r *MemoryResumeRepo) Add(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[resume.SessionID] = append(r.data[resume.SessionID], resume)
	return nil
}

// ListBySession returns the session's resumes in upload order.
func (r *MemoryResumeRepo) ListBySession(ctx context.Context, sessionID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resumes := r.data[sessionID]
	out := make([]Resume, len(resumes))
	copy(out, resumes)
	return out, nil
}

// ClearSession removes all resumes for a session, returning how many there were.
func (r *MemoryResumeRepo) ClearSession(ctx context.Context, sessionID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.data[sessionID])
	delete(r.data, sessionID)
	return n, nil
}

// MemoryAnalysisRepo is an in-memory implementation of AnalysisRepo.
type MemoryAnalysisRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Analysis // sessionId -> analysisId -> analysis
}

// NewMemoryAnalysisRepo constructs a MemoryAnalysisRepo.
func NewMemoryAnalysisRepo() *MemoryAnalysisRepo {
	return &MemoryAnalysisRepo{data: make(map[string]map[string]Analysis)}
}

// Create stores a completed analysis.
func (r *MemoryAnalysisRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.data[analysis.SessionID]
	if !ok {
		session = make(map[string]Analysis)
		r.data[analysis.SessionID] = session
	}
	session[analysis.ID] = analysis
	return nil
}

// GetByID returns one analysis for a session.
func (r *MemoryAnalysisRepo) GetByID(ctx context.Context, sessionID, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.data[sessionID][analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

var (
	_ ResumeRepo   = (*MemoryResumeRepo)(nil)
	_ AnalysisRepo = (*MemoryAnalysisRepo)(nil)
)
