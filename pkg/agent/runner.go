package agent

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	errs "tripagent/pkg/errors"
	"tripagent/pkg/logger"
	"tripagent/pkg/ratelimit"
	"tripagent/pkg/retry"
)

// placeholderPattern matches {key} references in agent instructions.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	// LLM is the model backend. Required.
	LLM LLM

	// DefaultModel is used for agents that do not set their own model.
	DefaultModel string

	// Retry controls how model calls are retried. Nil disables retries
	// beyond the single attempt.
	Retry *retry.Config

	// Limiter paces model calls. Nil means no pacing.
	Limiter ratelimit.Limiter

	// Logger receives runner diagnostics. Nil uses the global logger.
	Logger logger.Logger
}

// Runner executes agents, pipelines and coordinators against a session.
// Model calls are paced by the limiter and retried per the retry config.
type Runner struct {
	llm          LLM
	defaultModel string
	retryCfg     *retry.Config
	limiter      ratelimit.Limiter
	log          logger.Logger
}

// NewRunner creates a runner from the config.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.LLM == nil {
		return nil, errors.New("runner requires an LLM")
	}
	if cfg.DefaultModel == "" {
		return nil, errors.New("runner requires a default model")
	}
	if cfg.Retry != nil {
		if err := cfg.Retry.Validate(); err != nil {
			return nil, fmt.Errorf("invalid retry config: %w", err)
		}
	}

	limiter := cfg.Limiter
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.GetLogger()
	}

	return &Runner{
		llm:          cfg.LLM,
		defaultModel: cfg.DefaultModel,
		retryCfg:     cfg.Retry,
		limiter:      limiter,
		log:          log.WithField("component", "runner"),
	}, nil
}

// RunAgent executes a single agent on the given input, records the exchange
// in the session, and stores the response under the agent's output key.
func (r *Runner) RunAgent(ctx context.Context, sess *Session, a *Agent, input string) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}

	model := a.Model
	if model == "" {
		model = r.defaultModel
	}

	req := Request{
		Model:             model,
		SystemInstruction: r.expandPlaceholders(sess, a.Instruction),
		Prompt:            input,
		UseSearch:         a.UseSearch,
	}

	log := r.log.WithFields(map[string]interface{}{
		"agent": a.Name,
		"model": model,
	})
	log.Debug("running agent")

	output, err := r.generate(ctx, req)
	if err != nil {
		log.WithError(err).Error("agent failed")
		return "", fmt.Errorf("agent %s: %w", a.Name, err)
	}

	sess.AppendEvent(a.Name, output)
	if a.OutputKey != "" {
		sess.Set(a.OutputKey, output)
	}

	return output, nil
}

// RunPipeline executes the pipeline's agents in order. Each agent receives
// the previous agent's output as its input, the first receiving the user
// message. The final agent's output is returned.
func (r *Runner) RunPipeline(ctx context.Context, sess *Session, p *Pipeline, input string) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	sess.AppendEvent("user", input)

	current := input
	for _, a := range p.Agents {
		output, err := r.RunAgent(ctx, sess, a, current)
		if err != nil {
			return "", fmt.Errorf("pipeline %s: %w", p.Name, err)
		}
		current = output
	}

	return current, nil
}

// RunCoordinator sends the user message to every specialist concurrently,
// then runs the synthesizer over the combined specialist outputs.
func (r *Runner) RunCoordinator(ctx context.Context, sess *Session, c *Coordinator, input string) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	sess.AppendEvent("user", input)

	outputs := make([]string, len(c.Specialists))
	failures := make([]error, len(c.Specialists))

	var wg sync.WaitGroup
	for i, a := range c.Specialists {
		wg.Add(1)
		go func(i int, a *Agent) {
			defer wg.Done()
			outputs[i], failures[i] = r.RunAgent(ctx, sess, a, input)
		}(i, a)
	}
	wg.Wait()

	for i, err := range failures {
		if err != nil {
			return "", fmt.Errorf("coordinator %s: specialist %s: %w", c.Name, c.Specialists[i].Name, err)
		}
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "User request:\n%s\n", input)
	for i, a := range c.Specialists {
		fmt.Fprintf(&summary, "\n## %s", a.Name)
		if a.Description != "" {
			fmt.Fprintf(&summary, " (%s)", a.Description)
		}
		fmt.Fprintf(&summary, "\n%s\n", outputs[i])
	}

	return r.RunAgent(ctx, sess, c.Synthesizer, summary.String())
}

// generate performs one paced, retried model call.
func (r *Runner) generate(ctx context.Context, req Request) (string, error) {
	op := func() (string, error) {
		r.limiter.Wait()
		return r.llm.Generate(ctx, req)
	}

	if r.retryCfg == nil {
		return op()
	}
	return retry.DoWithResult(op, r.retryCfg)
}

// expandPlaceholders substitutes {key} references in an instruction with
// values from session state. Unknown keys are left untouched so literal
// braces in instructions survive.
func (r *Runner) expandPlaceholders(sess *Session, instruction string) string {
	if sess == nil || !strings.Contains(instruction, "{") {
		return instruction
	}
	return placeholderPattern.ReplaceAllStringFunc(instruction, func(match string) string {
		key := match[1 : len(match)-1]
		if v, ok := sess.Get(key); ok {
			return v
		}
		return match
	})
}

// RetryDefaults returns the retry policy used for model calls: transient
// provider failures are retried, everything else propagates immediately.
func RetryDefaults() *retry.Config {
	cfg := retry.DefaultConfig()
	cfg.RetryableKinds = []errs.Kind{
		errs.KindRateLimit,
		errs.KindNetwork,
		errs.KindServer,
	}
	return cfg
}
