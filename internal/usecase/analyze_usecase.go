package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jobsense/internal/ai"
	"jobsense/internal/domain/analysis"
	"jobsense/internal/domain/job"
	"jobsense/internal/logger"
	"jobsense/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	analysisLockTTL = 2 * time.Minute
	logPreviewLen   = 200
)

// AnalysisNotifier receives a notification after every fresh analysis run.
type AnalysisNotifier interface {
	JobAnalyzed(jobID uuid.UUID, level analysis.ExperienceLevel, fallback bool)
}

type AnalyzeResult struct {
	Analysis            analysis.JobAnalysis
	Cached              bool
	FallbackUsed        bool
	EmbeddingCreated    bool
	EmbeddingDimensions int
}

type AnalyzeUsecase interface {
	Analyze(ctx context.Context, jobID uuid.UUID, force bool) (AnalyzeResult, error)
	GetAnalysis(ctx context.Context, jobID uuid.UUID) (analysis.JobAnalysis, error)
}

type Analyzer struct {
	jobs       repository.JobRepository
	analyses   repository.AnalysisRepository
	embeddings repository.EmbeddingRepository
	generator  ai.Generator
	embedder   ai.Embedder
	cache      AnalysisCache
	notifier   AnalysisNotifier
	log        *zap.Logger
}

func NewAnalyzeUsecase(
	jobs repository.JobRepository,
	analyses repository.AnalysisRepository,
	embeddings repository.EmbeddingRepository,
	generator ai.Generator,
	embedder ai.Embedder,
	cache AnalysisCache,
	notifier AnalysisNotifier,
	log *zap.Logger,
) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		jobs:       jobs,
		analyses:   analyses,
		embeddings: embeddings,
		generator:  generator,
		embedder:   embedder,
		cache:      cache,
		notifier:   notifier,
		log:        log,
	}
}

func analysisCacheKey(jobID uuid.UUID) string {
	return "analysis:" + jobID.String()
}

func analysisLockKey(jobID uuid.UUID) string {
	return "analysis:lock:" + jobID.String()
}

// Analyze runs the extraction pipeline for one job post. A stored analysis
// short-circuits the run unless force is set. The operation itself never
// fails on capability outage: extraction errors degrade to the heuristic
// fallback and an embedding failure only drops the vector.
func (u *Analyzer) Analyze(ctx context.Context, jobID uuid.UUID, force bool) (AnalyzeResult, error) {
	if jobID == uuid.Nil {
		return AnalyzeResult{}, ErrJobNotFound
	}

	p, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return AnalyzeResult{}, ErrJobNotFound
		}
		return AnalyzeResult{}, ErrInternal
	}

	if !force {
		if res, ok := u.stored(ctx, jobID); ok {
			return res, nil
		}
	}

	if !u.cache.TryLock(ctx, analysisLockKey(jobID), analysisLockTTL) {
		return AnalyzeResult{}, ErrAnalysisInProgress
	}
	defer u.cache.Unlock(ctx, analysisLockKey(jobID))

	return u.run(ctx, p)
}

func (u *Analyzer) GetAnalysis(ctx context.Context, jobID uuid.UUID) (analysis.JobAnalysis, error) {
	if jobID == uuid.Nil {
		return analysis.JobAnalysis{}, ErrJobNotFound
	}
	exists, err := u.jobs.ExistsByID(ctx, jobID)
	if err != nil {
		return analysis.JobAnalysis{}, ErrInternal
	}
	if !exists {
		return analysis.JobAnalysis{}, ErrJobNotFound
	}

	a, err := u.analyses.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			return analysis.JobAnalysis{}, ErrAnalysisNotFound
		}
		return analysis.JobAnalysis{}, ErrInternal
	}
	return a, nil
}

// stored returns an existing analysis from the cache or, failing that, the
// database. A database hit repopulates the cache.
func (u *Analyzer) stored(ctx context.Context, jobID uuid.UUID) (AnalyzeResult, bool) {
	var cached analysis.JobAnalysis
	hit, err := u.cache.GetJSON(ctx, analysisCacheKey(jobID), &cached)
	if err != nil {
		u.log.Debug("analysis cache read failed", zap.String("job_id", jobID.String()), zap.Error(err))
	}
	if hit {
		return AnalyzeResult{Analysis: cached, Cached: true}, true
	}

	a, err := u.analyses.GetByJobID(ctx, jobID)
	if err != nil {
		return AnalyzeResult{}, false
	}
	_ = u.cache.SetJSON(ctx, analysisCacheKey(jobID), a, 0)
	return AnalyzeResult{Analysis: a, Cached: true}, true
}

func (u *Analyzer) run(ctx context.Context, p job.Post) (AnalyzeResult, error) {
	src := analysis.Source{
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		JobType:     p.JobType,
		Description: p.Description,
	}

	ex := u.extract(ctx, src)
	fallbackUsed := ex.Status != analysis.StatusExtracted
	if fallbackUsed {
		u.log.Warn("extraction unavailable, using heuristic fallback",
			zap.String("job_id", p.ID.String()),
			zap.Int("status", int(ex.Status)),
			zap.Error(ex.Err),
		)
	}

	a := analysis.Resolve(ex, src)
	a.ID = uuid.New()
	a.JobPostID = p.ID
	a.AnalyzedAt = time.Now().UTC()

	if err := u.analyses.Upsert(ctx, &a); err != nil {
		u.log.Error("analysis upsert failed", zap.String("job_id", p.ID.String()), zap.Error(err))
		return AnalyzeResult{}, ErrInternal
	}

	res := AnalyzeResult{Analysis: a, FallbackUsed: fallbackUsed}

	text := analysis.BuildEmbeddingText(src, a)
	vec, err := u.embedder.EmbedText(ctx, text)
	if err != nil {
		u.log.Warn("embedding failed, analysis stored without vector",
			zap.String("job_id", p.ID.String()), zap.Error(err))
	} else if err := u.embeddings.UpsertJobEmbedding(ctx, p.ID, vec, text); err != nil {
		u.log.Warn("embedding upsert failed",
			zap.String("job_id", p.ID.String()), zap.Error(err))
	} else {
		res.EmbeddingCreated = true
		res.EmbeddingDimensions = len(vec)
	}

	_ = u.cache.SetJSON(ctx, analysisCacheKey(p.ID), a, 0)

	if u.notifier != nil {
		u.notifier.JobAnalyzed(p.ID, a.ExperienceLevel, fallbackUsed)
	}

	u.log.Info("job analyzed",
		zap.String("job_id", p.ID.String()),
		zap.String("experience_level", string(a.ExperienceLevel)),
		zap.Bool("fallback", fallbackUsed),
		zap.Bool("embedding_created", res.EmbeddingCreated),
	)
	return res, nil
}

// extract runs the full prompt, falling back to one minimal retry when the
// response does not parse. Transport failure on the first call reports
// unavailable; anything unparseable after the retry reports malformed.
func (u *Analyzer) extract(ctx context.Context, src analysis.Source) analysis.Extraction {
	raw, err := u.generator.GenerateJSON(ctx, buildAnalyzePrompt(src), analyzeSystemPrompt)
	if err != nil {
		return analysis.Unavailable(err)
	}

	parsed, err := parseExtraction(raw)
	if err == nil {
		return analysis.Extracted(parsed)
	}
	u.log.Warn("extraction response unparseable, retrying with minimal prompt",
		zap.Error(err),
		zap.String("response_preview", logger.TruncateForLog(raw, logPreviewLen)),
	)

	retryRaw, retryErr := u.generator.GenerateJSON(ctx, buildAnalyzeRetryPrompt(src), "")
	if retryErr != nil {
		return analysis.Malformed(raw)
	}
	parsed, retryErr = parseExtraction(retryRaw)
	if retryErr != nil {
		return analysis.Malformed(retryRaw)
	}
	return analysis.Extracted(parsed)
}

type salaryPayload struct {
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Currency string   `json:"currency"`
	Period   string   `json:"period"`
}

// extractionPayload mirrors the JSON schema the extraction prompt asks for.
// Every field is optional; JSON nulls leave the zero value in place.
type extractionPayload struct {
	RequiredSkills        []string       `json:"required_skills"`
	PreferredSkills       []string       `json:"preferred_skills"`
	ExperienceLevel       string         `json:"experience_level"`
	MinYearsExperience    *float64       `json:"min_years_experience"`
	MaxYearsExperience    *float64       `json:"max_years_experience"`
	EducationRequirements []string       `json:"education_requirements"`
	Certifications        []string       `json:"certifications"`
	Responsibilities      []string       `json:"responsibilities"`
	Benefits              []string       `json:"benefits"`
	SalaryRange           *salaryPayload `json:"salary_range"`
	EmploymentType        string         `json:"employment_type"`
	RemotePolicy          string         `json:"remote_policy"`
	Industry              string         `json:"industry"`
	CompanySize           string         `json:"company_size"`
	KeyTechnologies       []string       `json:"key_technologies"`
	SoftSkills            []string       `json:"soft_skills"`
}

func parseExtraction(raw string) (analysis.JobAnalysis, error) {
	cleaned := ai.ExtractJSON(raw)

	var p extractionPayload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return analysis.JobAnalysis{}, err
	}
	return payloadToAnalysis(p), nil
}

func payloadToAnalysis(p extractionPayload) analysis.JobAnalysis {
	a := analysis.JobAnalysis{
		RequiredSkills:        p.RequiredSkills,
		PreferredSkills:       p.PreferredSkills,
		KeyTechnologies:       p.KeyTechnologies,
		SoftSkills:            p.SoftSkills,
		ExperienceLevel:       analysis.ExperienceLevel(p.ExperienceLevel),
		MinYears:              yearsToInt(p.MinYearsExperience),
		MaxYears:              yearsToInt(p.MaxYearsExperience),
		EducationRequirements: p.EducationRequirements,
		Certifications:        p.Certifications,
		Responsibilities:      p.Responsibilities,
		Benefits:              p.Benefits,
		EmploymentType:        analysis.EmploymentType(p.EmploymentType),
		RemotePolicy:          analysis.RemotePolicy(p.RemotePolicy),
		Industry:              p.Industry,
		CompanySize:           p.CompanySize,
	}
	if s := p.SalaryRange; s != nil && (s.Min != nil || s.Max != nil || s.Currency != "" || s.Period != "") {
		a.SalaryRange = &analysis.SalaryRange{
			Min:      s.Min,
			Max:      s.Max,
			Currency: s.Currency,
			Period:   s.Period,
		}
	}
	return a
}

func yearsToInt(f *float64) *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
