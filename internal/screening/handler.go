package screening

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/scoring"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume and analysis routes to the router group.
// analyzeLimiter guards the analysis run, which fans out to the hosted model.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, analyzeLimiter gin.HandlerFunc) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes", h.list)
	rg.DELETE("/resumes", h.clear)

	if analyzeLimiter != nil {
		rg.POST("/analyses", analyzeLimiter, h.analyze)
	} else {
		rg.POST("/analyses", h.analyze)
	}
	rg.GET("/analyses/:id", h.get)
	rg.GET("/analyses/:id/preview", h.preview)
	rg.GET("/analyses/:id/report", h.mergedReport)
	rg.GET("/analyses/:id/export", h.export)
	rg.GET("/analyses/:id/candidates/:cid/report", h.candidateReport)
}

func (h *Handler) upload(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form with files is required", nil)
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		fileHeaders = form.File["file"]
	}
	if len(fileHeaders) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "at least one file is required", nil)
		return
	}

	resp := uploadResponse{
		Accepted: []resumeResponse{},
		Rejected: []rejectedFile{},
	}
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			resp.Rejected = append(resp.Rejected, rejectedFile{FileName: fh.Filename, Reason: "unable to read file"})
			continue
		}
		resume, err := h.Svc.Upload(c.Request.Context(), sessionID, fh.Filename, fh.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			resp.Rejected = append(resp.Rejected, rejectedFile{FileName: fh.Filename, Reason: rejectReason(err)})
			continue
		}
		resp.Accepted = append(resp.Accepted, toResumeResponse(resume))
	}

	status := http.StatusCreated
	if len(resp.Accepted) == 0 {
		status = http.StatusBadRequest
	}
	respond.JSON(c, status, resp)
}

func (h *Handler) list(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	resumes, err := h.Svc.List(c.Request.Context(), sessionID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}

	resp := make([]resumeResponse, 0, len(resumes))
	for _, r := range resumes {
		resp = append(resp, toResumeResponse(r))
	}
	respond.OK(c, resp)
}

func (h *Handler) clear(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	removed, err := h.Svc.Clear(c.Request.Context(), sessionID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to clear resumes", nil)
		return
	}
	respond.OK(c, gin.H{"removed": removed})
}

type analyzeRequest struct {
	JobDescription string   `json:"jobDescription"`
	LexicalWeight  *float64 `json:"lexicalWeight"`
	SemanticWeight *float64 `json:"semanticWeight"`
	TopN           int      `json:"topN"`
}

func (h *Handler) analyze(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	input := AnalyzeInput{
		JobDescription: req.JobDescription,
		Weights:        requestWeights(req.LexicalWeight, req.SemanticWeight),
		TopN:           req.TopN,
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), sessionID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toAnalysisResponse(analysis))
}

func (h *Handler) get(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	analysis, err := h.Svc.Get(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respond.OK(c, toAnalysisResponse(analysis))
}

func (h *Handler) preview(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	text, err := h.Svc.Preview(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respond.OK(c, gin.H{"preview": text})
}

func (h *Handler) mergedReport(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	var buf bytes.Buffer
	if err := h.Svc.WriteMergedReport(c.Request.Context(), sessionID, c.Param("id"), &buf); err != nil {
		respondAnalysisError(c, err)
		return
	}
	sendAttachment(c, contentTypePDF, "screening-report.pdf", buf.Bytes())
}

func (h *Handler) candidateReport(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	var buf bytes.Buffer
	err := h.Svc.WriteCandidateReport(c.Request.Context(), sessionID, c.Param("id"), c.Param("cid"), &buf)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	sendAttachment(c, contentTypePDF, "candidate-report.pdf", buf.Bytes())
}

func (h *Handler) export(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	var buf bytes.Buffer
	if err := h.Svc.WriteExport(c.Request.Context(), sessionID, c.Param("id"), &buf); err != nil {
		respondAnalysisError(c, err)
		return
	}
	sendAttachment(c, contentTypeXLSX, "screening-results.xlsx", buf.Bytes())
}

func respondAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "request failed", nil)
	}
}

func sendAttachment(c *gin.Context, contentType, fileName string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, data)
}

// rejectReason strips the sentinel prefix so the per-file detail reads clean.
func rejectReason(err error) string {
	if errors.Is(err, ErrInvalidInput) {
		msg := err.Error()
		if prefix := ErrInvalidInput.Error() + ": "; len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
		return msg
	}
	return "failed to store file"
}

// requestWeights builds the weight override from the optional request fields.
// A single-sided override implies its complement.
func requestWeights(lexical, semantic *float64) *scoring.Weights {
	if lexical == nil && semantic == nil {
		return nil
	}
	w := scoring.Weights{}
	switch {
	case lexical != nil && semantic != nil:
		w.Lexical = *lexical
		w.Semantic = *semantic
	case lexical != nil:
		w.Lexical = *lexical
		w.Semantic = 1 - *lexical
	default:
		w.Semantic = *semantic
		w.Lexical = 1 - *semantic
	}
	return &w
}
