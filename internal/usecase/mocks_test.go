package usecase

import (
	"context"
	"encoding/json"
	"time"

	"jobsense/internal/domain/analysis"
	"jobsense/internal/domain/candidate"
	"jobsense/internal/domain/generation"
	"jobsense/internal/domain/job"
	"jobsense/internal/repository"

	"github.com/google/uuid"
)

type mockJobRepo struct {
	posts      map[uuid.UUID]job.Post
	noAnalysis []job.Post
	err        error
}

func newMockJobRepo(posts ...job.Post) mockJobRepo {
	m := mockJobRepo{posts: make(map[uuid.UUID]job.Post)}
	for _, p := range posts {
		m.posts[p.ID] = p
	}
	return m
}

func (m mockJobRepo) Create(_ context.Context, p *job.Post) error {
	if m.err != nil {
		return m.err
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	m.posts[p.ID] = *p
	return nil
}

func (m mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Post, error) {
	if m.err != nil {
		return job.Post{}, m.err
	}
	p, ok := m.posts[id]
	if !ok {
		return job.Post{}, repository.ErrJobNotFound
	}
	return p, nil
}

func (m mockJobRepo) List(context.Context, int, int) ([]job.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]job.Post, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, p)
	}
	return out, nil
}

func (m mockJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.posts[id]; !ok {
		return repository.ErrJobNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m mockJobRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.posts[id]
	return ok, nil
}

func (m mockJobRepo) ListWithoutAnalysis(context.Context, int, int) ([]job.Post, error) {
	return m.noAnalysis, m.err
}

type mockAnalysisRepo struct {
	stored map[uuid.UUID]analysis.JobAnalysis
	err    error
}

func newMockAnalysisRepo() mockAnalysisRepo {
	return mockAnalysisRepo{stored: make(map[uuid.UUID]analysis.JobAnalysis)}
}

func (m mockAnalysisRepo) Upsert(_ context.Context, a *analysis.JobAnalysis) error {
	if m.err != nil {
		return m.err
	}
	if prev, ok := m.stored[a.JobPostID]; ok {
		a.ID = prev.ID
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.stored[a.JobPostID] = *a
	return nil
}

func (m mockAnalysisRepo) GetByJobID(_ context.Context, jobID uuid.UUID) (analysis.JobAnalysis, error) {
	if m.err != nil {
		return analysis.JobAnalysis{}, m.err
	}
	a, ok := m.stored[jobID]
	if !ok {
		return analysis.JobAnalysis{}, repository.ErrAnalysisNotFound
	}
	return a, nil
}

func (m mockAnalysisRepo) ExistsByJobID(_ context.Context, jobID uuid.UUID) (bool, error) {
	_, ok := m.stored[jobID]
	return ok, m.err
}

type mockEmbeddingRepo struct {
	jobVecs    map[uuid.UUID]repository.Embedding
	candVecs   map[uuid.UUID]repository.Embedding
	candidates []repository.CandidateVector
	upsertErr  error
}

func newMockEmbeddingRepo() *mockEmbeddingRepo {
	return &mockEmbeddingRepo{
		jobVecs:  make(map[uuid.UUID]repository.Embedding),
		candVecs: make(map[uuid.UUID]repository.Embedding),
	}
}

func (m *mockEmbeddingRepo) UpsertJobEmbedding(_ context.Context, jobID uuid.UUID, vector []float32, sourceText string) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.jobVecs[jobID] = repository.Embedding{OwnerID: jobID, Vector: vector, SourceText: sourceText, Dimensions: len(vector)}
	return nil
}

func (m *mockEmbeddingRepo) GetJobEmbedding(_ context.Context, jobID uuid.UUID) (repository.Embedding, error) {
	e, ok := m.jobVecs[jobID]
	if !ok {
		return repository.Embedding{}, repository.ErrEmbeddingNotFound
	}
	return e, nil
}

func (m *mockEmbeddingRepo) UpsertCandidateEmbedding(_ context.Context, documentID uuid.UUID, vector []float32, sourceText string) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.candVecs[documentID] = repository.Embedding{OwnerID: documentID, Vector: vector, SourceText: sourceText, Dimensions: len(vector)}
	return nil
}

func (m *mockEmbeddingRepo) GetCandidateEmbedding(_ context.Context, documentID uuid.UUID) (repository.Embedding, error) {
	e, ok := m.candVecs[documentID]
	if !ok {
		return repository.Embedding{}, repository.ErrEmbeddingNotFound
	}
	return e, nil
}

func (m *mockEmbeddingRepo) ListCandidateVectors(context.Context) ([]repository.CandidateVector, error) {
	return m.candidates, nil
}

type mockCandidateRepo struct {
	docs map[uuid.UUID]candidate.Document
	err  error
}

func newMockCandidateRepo(docs ...candidate.Document) mockCandidateRepo {
	m := mockCandidateRepo{docs: make(map[uuid.UUID]candidate.Document)}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

func (m mockCandidateRepo) Create(_ context.Context, d *candidate.Document) error {
	if m.err != nil {
		return m.err
	}
	d.CreatedAt = time.Now().UTC()
	m.docs[d.ID] = *d
	return nil
}

func (m mockCandidateRepo) GetByID(_ context.Context, id uuid.UUID) (candidate.Document, error) {
	d, ok := m.docs[id]
	if !ok {
		return candidate.Document{}, repository.ErrCandidateNotFound
	}
	return d, nil
}

func (m mockCandidateRepo) List(context.Context, int, int) ([]candidate.Document, error) {
	out := make([]candidate.Document, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out, m.err
}

func (m mockCandidateRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.docs[id]
	return ok, m.err
}

type mockCoverLetterRepo struct {
	letters map[uuid.UUID]generation.CoverLetter
	err     error
}

func newMockCoverLetterRepo() mockCoverLetterRepo {
	return mockCoverLetterRepo{letters: make(map[uuid.UUID]generation.CoverLetter)}
}

func (m mockCoverLetterRepo) Create(_ context.Context, cl *generation.CoverLetter) error {
	if m.err != nil {
		return m.err
	}
	cl.CreatedAt = time.Now().UTC()
	m.letters[cl.ID] = *cl
	return nil
}

func (m mockCoverLetterRepo) GetByID(_ context.Context, id uuid.UUID) (generation.CoverLetter, error) {
	cl, ok := m.letters[id]
	if !ok {
		return generation.CoverLetter{}, repository.ErrCoverLetterNotFound
	}
	return cl, nil
}

func (m mockCoverLetterRepo) List(context.Context, int, int) ([]generation.CoverLetter, error) {
	out := make([]generation.CoverLetter, 0, len(m.letters))
	for _, cl := range m.letters {
		out = append(out, cl)
	}
	return out, m.err
}

func (m mockCoverLetterRepo) ListByJobID(_ context.Context, jobID uuid.UUID, _, _ int) ([]generation.CoverLetter, error) {
	out := make([]generation.CoverLetter, 0)
	for _, cl := range m.letters {
		if cl.JobPostID == jobID {
			out = append(out, cl)
		}
	}
	return out, m.err
}

// stubGenerator returns queued JSON responses in call order. Index i of
// jsonErrs, when set, fails call i instead.
type stubGenerator struct {
	jsonResponses []string
	jsonErrs      []error
	textResponse  string
	textErr       error

	jsonCalls  int
	textCalls  int
	lastPrompt string
	lastSystem string
}

func (g *stubGenerator) GenerateJSON(_ context.Context, prompt, system string) (string, error) {
	i := g.jsonCalls
	g.jsonCalls++
	g.lastPrompt = prompt
	g.lastSystem = system
	if i < len(g.jsonErrs) && g.jsonErrs[i] != nil {
		return "", g.jsonErrs[i]
	}
	if i < len(g.jsonResponses) {
		return g.jsonResponses[i], nil
	}
	return "", nil
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt, system string) (string, error) {
	g.textCalls++
	g.lastPrompt = prompt
	g.lastSystem = system
	return g.textResponse, g.textErr
}

type stubEmbedder struct {
	vec      []float32
	err      error
	calls    int
	lastText string
}

func (e *stubEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	e.calls++
	e.lastText = text
	if e.err != nil {
		return nil, e.err
	}
	return e.vec, nil
}

type stubCache struct {
	data     map[string][]byte
	lockHeld bool
	deletes  []string
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string][]byte)}
}

func (c *stubCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *stubCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *stubCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	c.deletes = append(c.deletes, key)
	return nil
}

func (c *stubCache) TryLock(context.Context, string, time.Duration) bool {
	return !c.lockHeld
}

func (c *stubCache) Unlock(_ context.Context, key string) {
	delete(c.data, key)
}

type notifiedEvent struct {
	jobID    uuid.UUID
	level    analysis.ExperienceLevel
	fallback bool
}

type stubNotifier struct {
	events []notifiedEvent
}

func (n *stubNotifier) JobAnalyzed(jobID uuid.UUID, level analysis.ExperienceLevel, fallback bool) {
	n.events = append(n.events, notifiedEvent{jobID: jobID, level: level, fallback: fallback})
}
