package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobsense/internal/domain/analysis"
	"jobsense/internal/domain/job"
	"jobsense/internal/usecase"

	"github.com/google/uuid"
)

type fakeJobLister struct {
	mu      sync.Mutex
	pending []job.Post
}

func (f *fakeJobLister) Create(context.Context, *job.Post) error { return nil }
func (f *fakeJobLister) GetByID(context.Context, uuid.UUID) (job.Post, error) {
	return job.Post{}, nil
}
func (f *fakeJobLister) List(context.Context, int, int) ([]job.Post, error) { return nil, nil }
func (f *fakeJobLister) Delete(context.Context, uuid.UUID) error            { return nil }
func (f *fakeJobLister) ExistsByID(context.Context, uuid.UUID) (bool, error) {
	return true, nil
}

func (f *fakeJobLister) ListWithoutAnalysis(_ context.Context, limit, offset int) ([]job.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset >= len(f.pending) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.pending) {
		end = len(f.pending)
	}
	out := make([]job.Post, end-offset)
	copy(out, f.pending[offset:end])
	return out, nil
}

// markDone removes an analyzed job from the pending set the way a stored
// analysis removes it from the SQL predicate.
func (f *fakeJobLister) markDone(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.pending {
		if p.ID == id {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return
		}
	}
}

type fakeAnalyzer struct {
	lister   *fakeJobLister
	failIDs  map[uuid.UUID]bool
	fallback bool
	calls    atomic.Int64
}

func (a *fakeAnalyzer) Analyze(_ context.Context, jobID uuid.UUID, _ bool) (usecase.AnalyzeResult, error) {
	a.calls.Add(1)
	if a.failIDs[jobID] {
		return usecase.AnalyzeResult{}, usecase.ErrInternal
	}
	a.lister.markDone(jobID)
	return usecase.AnalyzeResult{
		Analysis:         analysis.JobAnalysis{JobPostID: jobID, ExperienceLevel: analysis.ExperienceMid},
		FallbackUsed:     a.fallback,
		EmbeddingCreated: true,
	}, nil
}

func (a *fakeAnalyzer) GetAnalysis(context.Context, uuid.UUID) (analysis.JobAnalysis, error) {
	return analysis.JobAnalysis{}, usecase.ErrAnalysisNotFound
}

func makePending(n int) []job.Post {
	out := make([]job.Post, n)
	for i := range out {
		out[i] = job.Post{ID: uuid.New(), Title: "Engineer", Company: "Acme"}
	}
	return out
}

func TestAnalysisPipeline_ProcessesAllPendingJobs(t *testing.T) {
	lister := &fakeJobLister{pending: makePending(7)}
	analyzer := &fakeAnalyzer{lister: lister}
	p := NewAnalysisPipeline(lister, analyzer, nil)

	summary, err := p.Run(context.Background(), RunParams{Workers: 3, BatchSize: 3})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Processed != 7 || summary.Succeeded != 7 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Embedded != 7 {
		t.Fatalf("expected 7 embedded, got %d", summary.Embedded)
	}
	if got := analyzer.calls.Load(); got != 7 {
		t.Fatalf("expected 7 analyze calls, got %d", got)
	}
	if len(lister.pending) != 0 {
		t.Fatalf("all jobs should be analyzed, %d left", len(lister.pending))
	}
}

func TestAnalysisPipeline_FailuresDoNotLoopForever(t *testing.T) {
	pending := makePending(5)
	failIDs := map[uuid.UUID]bool{pending[1].ID: true, pending[3].ID: true}
	lister := &fakeJobLister{pending: pending}
	analyzer := &fakeAnalyzer{lister: lister, failIDs: failIDs}
	p := NewAnalysisPipeline(lister, analyzer, nil)

	done := make(chan struct{})
	var summary Summary
	var err error
	go func() {
		summary, err = p.Run(context.Background(), RunParams{Workers: 2, BatchSize: 2})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("pipeline did not terminate with persistent failures")
	}

	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Failed != 2 || summary.Succeeded != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(lister.pending) != 2 {
		t.Fatalf("failed jobs should remain pending, got %d", len(lister.pending))
	}
}

func TestAnalysisPipeline_CountsFallbacks(t *testing.T) {
	lister := &fakeJobLister{pending: makePending(3)}
	analyzer := &fakeAnalyzer{lister: lister, fallback: true}
	p := NewAnalysisPipeline(lister, analyzer, nil)

	summary, err := p.Run(context.Background(), RunParams{Workers: 1, BatchSize: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.Fallbacks != 3 {
		t.Fatalf("expected 3 fallbacks, got %d", summary.Fallbacks)
	}
}

func TestAnalysisPipeline_ContextCancel(t *testing.T) {
	lister := &fakeJobLister{pending: makePending(4)}
	analyzer := &fakeAnalyzer{lister: lister}
	p := NewAnalysisPipeline(lister, analyzer, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, RunParams{Workers: 2, BatchSize: 2})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
