package screening

import "context"

// ResumeRepo stores uploaded resume records per session.
type ResumeRepo interface {
	Add(ctx context.Context, resume Resume) error
	ListBySession(ctx context.Context, sessionID string) ([]Resume, error)
	ClearSession(ctx context.Context, sessionID string) (int, error)
}

// AnalysisRepo stores completed analyses per session.
type AnalysisRepo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, sessionID, analysisID string) (Analysis, error)
}
