package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/llm"
	"resume-screener/internal/llm/gemini"
	"resume-screener/internal/scoring"
	"resume-screener/internal/screening"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/object"
	localstore "resume-screener/internal/shared/storage/object/local"
	s3store "resume-screener/internal/shared/storage/object/s3"
	"resume-screener/internal/skills"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	Store  object.ObjectStore

	Taxonomy  *skills.Taxonomy
	Embedder  scoring.Embedder
	Explainer llm.Explainer

	ResumeRepo   screening.ResumeRepo
	AnalysisRepo screening.AnalysisRepo

	ScreeningService *screening.Service
	ScreeningHandler *screening.Handler
}

// Build prepares shared dependencies and wires the router. Tests override the
// Embedder and Explainer fields (and rebuild the service) through the returned
// App before serving.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	taxonomy, err := buildTaxonomy(cfg)
	if err != nil {
		return nil, err
	}

	embedder, explainer, err := buildGemini(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Store:     store,
		Taxonomy:  taxonomy,
		Embedder:  embedder,
		Explainer: explainer,
	}
	app.BuildServices()

	return app, nil
}

// BuildServices wires repositories, the service, the handler and the router
// from the App's current dependency fields. Call again after swapping seams.
func (app *App) BuildServices() {
	if app.ResumeRepo == nil {
		app.ResumeRepo = screening.NewMemoryResumeRepo()
	}
	if app.AnalysisRepo == nil {
		app.AnalysisRepo = screening.NewMemoryAnalysisRepo()
	}

	app.ScreeningService = &screening.Service{
		Store:       app.Store,
		Resumes:     app.ResumeRepo,
		Analyses:    app.AnalysisRepo,
		Taxonomy:    app.Taxonomy,
		Embedder:    app.Embedder,
		Explainer:   app.Explainer,
		Weights:     scoring.Weights{Lexical: app.Config.LexicalWeight, Semantic: app.Config.SemanticWeight},
		ExplainTopN: app.Config.ExplainTopN,
		PhoneRegion: app.Config.PhoneRegion,
	}
	app.ScreeningHandler = screening.NewHandler(app.ScreeningService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		ScreeningHandler: app.ScreeningHandler,
	})
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildTaxonomy(cfg config.Config) (*skills.Taxonomy, error) {
	if strings.TrimSpace(cfg.SkillsFile) == "" {
		return skills.Default(), nil
	}
	return skills.Load(cfg.SkillsFile)
}

// buildGemini returns the embedder and explainer, both backed by one client.
// Without a credential the pipeline runs lexical-only with no explanations.
func buildGemini(ctx context.Context, cfg config.Config) (scoring.Embedder, llm.Explainer, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		log.Printf("bootstrap: GEMINI_API_KEY empty; semantic scoring and gap explanations disabled")
		return nil, llm.Disabled{}, nil
	}
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.EmbedModel)
	if err != nil {
		return nil, nil, err
	}
	return client, client, nil
}
