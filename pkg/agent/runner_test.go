package agent

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "tripagent/pkg/errors"
	"tripagent/pkg/logger"
	"tripagent/pkg/retry"
)

// mockLLM records every request and answers via the respond function.
type mockLLM struct {
	mu       sync.Mutex
	requests []Request
	respond  func(req Request) (string, error)
}

func (m *mockLLM) Generate(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.respond == nil {
		return "ok", nil
	}
	return m.respond(req)
}

func (m *mockLLM) calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

func newTestRunner(t *testing.T, llm LLM) *Runner {
	t.Helper()

	r, err := NewRunner(RunnerConfig{
		LLM:          llm,
		DefaultModel: "gemini-2.5-flash",
		Logger:       logger.NewTestLogger(),
	})
	require.NoError(t, err)
	return r
}

func newTestSession(t *testing.T) *Session {
	t.Helper()

	sess, err := NewInMemorySessionService().Create("app", "user", "s1")
	require.NoError(t, err)
	return sess
}

func TestNewRunnerValidation(t *testing.T) {
	t.Parallel()

	_, err := NewRunner(RunnerConfig{DefaultModel: "m"})
	assert.Error(t, err, "nil LLM must be rejected")

	_, err = NewRunner(RunnerConfig{LLM: &mockLLM{}})
	assert.Error(t, err, "empty default model must be rejected")

	bad := retry.DefaultConfig()
	bad.MaxAttempts = 0
	_, err = NewRunner(RunnerConfig{LLM: &mockLLM{}, DefaultModel: "m", Retry: bad})
	assert.Error(t, err, "invalid retry config must be rejected")
}

func TestRunAgentStoresOutput(t *testing.T) {
	t.Parallel()

	llm := &mockLLM{respond: func(req Request) (string, error) {
		return "three flight options", nil
	}}
	r := newTestRunner(t, llm)
	sess := newTestSession(t)

	a := &Agent{
		Name:        "flight_finder",
		Instruction: "Find flights.",
		OutputKey:   "flights",
	}

	out, err := r.RunAgent(context.Background(), sess, a, "Helsinki to Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "three flight options", out)

	v, ok := sess.Get("flights")
	require.True(t, ok)
	assert.Equal(t, "three flight options", v)

	events := sess.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "flight_finder", events[0].Author)

	calls := llm.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "gemini-2.5-flash", calls[0].Model)
	assert.Equal(t, "Helsinki to Tokyo", calls[0].Prompt)
}

func TestRunAgentModelOverride(t *testing.T) {
	t.Parallel()

	llm := &mockLLM{}
	r := newTestRunner(t, llm)
	sess := newTestSession(t)

	a := &Agent{Name: "pro", Model: "gemini-2.5-pro", Instruction: "Think hard."}

	_, err := r.RunAgent(context.Background(), sess, a, "hi")
	require.NoError(t, err)

	calls := llm.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "gemini-2.5-pro", calls[0].Model)
}

func TestRunAgentExpandsPlaceholders(t *testing.T) {
	t.Parallel()

	llm := &mockLLM{}
	r := newTestRunner(t, llm)
	sess := newTestSession(t)
	sess.Set("flights", "AY073 departing 17:30")

	a := &Agent{
		Name:        "hotel_finder",
		Instruction: "Pick hotels near the arrival airport. Flights: {flights}. Unknown: {missing}.",
	}

	_, err := r.RunAgent(context.Background(), sess, a, "hi")
	require.NoError(t, err)

	calls := llm.calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].SystemInstruction, "AY073 departing 17:30")
	assert.Contains(t, calls[0].SystemInstruction, "{missing}", "unknown keys stay literal")
}

func TestRunPipelineChainsOutputs(t *testing.T) {
	t.Parallel()

	llm := &mockLLM{respond: func(req Request) (string, error) {
		switch req.SystemInstruction {
		case "write":
			return "draft code", nil
		case "review":
			assert.Equal(t, "draft code", req.Prompt)
			return "review notes", nil
		case "refactor":
			assert.Equal(t, "review notes", req.Prompt)
			return "final code", nil
		}
		return "", errs.New(errs.KindBadRequest, "unexpected instruction")
	}}
	r := newTestRunner(t, llm)
	sess := newTestSession(t)

	p := &Pipeline{
		Name: "code_review",
		Agents: []*Agent{
			{Name: "writer", Instruction: "write", OutputKey: "generated_code"},
			{Name: "reviewer", Instruction: "review", OutputKey: "review_comments"},
			{Name: "refactorer", Instruction: "refactor"},
		},
	}

	out, err := r.RunPipeline(context.Background(), sess, p, "write a doubler")
	require.NoError(t, err)
	assert.Equal(t, "final code", out)

	code, _ := sess.Get("generated_code")
	assert.Equal(t, "draft code", code)
	comments, _ := sess.Get("review_comments")
	assert.Equal(t, "review notes", comments)

	// user message plus one event per agent
	assert.Len(t, sess.Events(), 4)
}

func TestRunPipelineStopsOnFailure(t *testing.T) {
	t.Parallel()

	llm := &mockLLM{respond: func(req Request) (string, error) {
		if req.SystemInstruction == "review" {
			return "", errs.New(errs.KindAuth, "invalid api key")
		}
		return "out", nil
	}}
	r := newTestRunner(t, llm)
	sess := newTestSession(t)

	p := &Pipeline{
		Name: "code_review",
		Agents: []*Agent{
			{Name: "writer", Instruction: "write"},
			{Name: "reviewer", Instruction: "review"},
			{Name: "refactorer", Instruction: "refactor"},
		},
	}

	_, err := r.RunPipeline(context.Background(), sess, p, "go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reviewer")
	assert.Len(t, llm.calls(), 2, "refactorer must not run after reviewer fails")
}

func TestRunCoordinatorFansOutAndSynthesizes(t *testing.T) {
	t.Parallel()

	llm := &mockLLM{respond: func(req Request) (string, error) {
		switch req.SystemInstruction {
		case "flights":
			return "flight results", nil
		case "hotels":
			return "hotel results", nil
		case "synthesize":
			assert.Contains(t, req.Prompt, "flight results")
			assert.Contains(t, req.Prompt, "hotel results")
			assert.Contains(t, req.Prompt, "a week in Tokyo")
			return "full itinerary", nil
		}
		return "", errs.New(errs.KindBadRequest, "unexpected instruction")
	}}
	r := newTestRunner(t, llm)
	sess := newTestSession(t)

	c := &Coordinator{
		Name: "travel_planner",
		Specialists: []*Agent{
			{Name: "flight_finder", Description: "searches flights", Instruction: "flights", OutputKey: "flights"},
			{Name: "hotel_finder", Description: "searches hotels", Instruction: "hotels", OutputKey: "hotels"},
		},
		Synthesizer: &Agent{Name: "synthesizer", Instruction: "synthesize"},
	}

	out, err := r.RunCoordinator(context.Background(), sess, c, "a week in Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "full itinerary", out)
	assert.Len(t, llm.calls(), 3)
}

func TestRunCoordinatorSpecialistFailure(t *testing.T) {
	t.Parallel()

	llm := &mockLLM{respond: func(req Request) (string, error) {
		if req.SystemInstruction == "hotels" {
			return "", errs.New(errs.KindBadRequest, "malformed request")
		}
		return "ok", nil
	}}
	r := newTestRunner(t, llm)
	sess := newTestSession(t)

	c := &Coordinator{
		Name: "travel_planner",
		Specialists: []*Agent{
			{Name: "flight_finder", Instruction: "flights"},
			{Name: "hotel_finder", Instruction: "hotels"},
		},
		Synthesizer: &Agent{Name: "synthesizer", Instruction: "synthesize"},
	}

	_, err := r.RunCoordinator(context.Background(), sess, c, "a week in Tokyo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hotel_finder")
	assert.Len(t, llm.calls(), 2, "synthesizer must not run after a specialist fails")
}

func TestRunnerRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls int
	var mu sync.Mutex
	llm := &mockLLM{respond: func(req Request) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls < 3 {
			return "", errs.New(errs.KindRateLimit, "429 resource exhausted")
		}
		return "recovered", nil
	}}

	cfg := RetryDefaults()
	cfg.Backoff = &retry.ConstantBackoff{Delay: time.Millisecond}
	cfg.Logger = logger.NewTestLogger()

	r, err := NewRunner(RunnerConfig{
		LLM:          llm,
		DefaultModel: "gemini-2.5-flash",
		Retry:        cfg,
		Logger:       logger.NewTestLogger(),
	})
	require.NoError(t, err)

	sess := newTestSession(t)
	a := &Agent{Name: "planner", Instruction: "plan"}

	out, err := r.RunAgent(context.Background(), sess, a, "hi")
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Len(t, llm.calls(), 3)
}

func TestRunnerDoesNotRetryAuthFailures(t *testing.T) {
	t.Parallel()

	llm := &mockLLM{respond: func(req Request) (string, error) {
		return "", errs.New(errs.KindAuth, "invalid api key")
	}}

	cfg := RetryDefaults()
	cfg.Backoff = &retry.ConstantBackoff{Delay: time.Millisecond}
	cfg.Logger = logger.NewTestLogger()

	r, err := NewRunner(RunnerConfig{
		LLM:          llm,
		DefaultModel: "gemini-2.5-flash",
		Retry:        cfg,
		Logger:       logger.NewTestLogger(),
	})
	require.NoError(t, err)

	sess := newTestSession(t)
	a := &Agent{Name: "planner", Instruction: "plan"}

	_, err = r.RunAgent(context.Background(), sess, a, "hi")
	require.Error(t, err)
	assert.Equal(t, errs.KindAuth, errs.KindOf(err))
	assert.Len(t, llm.calls(), 1)
}
