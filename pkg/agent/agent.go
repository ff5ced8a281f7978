package agent

import "errors"

// Agent is a declarative agent definition: a name, a model, an instruction,
// and optionally an output key under which the agent's response is stored in
// session state for downstream agents.
type Agent struct {
	// Name identifies the agent in events and logs.
	Name string

	// Model overrides the runner's default model when non-empty.
	Model string

	// Description is a one-line summary used when a coordinator presents
	// this agent's output to the synthesis step.
	Description string

	// Instruction is the agent's system instruction. It may reference
	// session state values as {key} placeholders, which are expanded from
	// the output keys of upstream agents.
	Instruction string

	// OutputKey, when non-empty, stores the agent's response in session
	// state under this key.
	OutputKey string

	// UseSearch grounds the agent's responses with the provider's web
	// search tool.
	UseSearch bool
}

// Validate checks the definition for the fields the runner requires.
func (a *Agent) Validate() error {
	if a.Name == "" {
		return errors.New("agent name is required")
	}
	if a.Instruction == "" {
		return errors.New("agent instruction is required")
	}
	return nil
}

// Pipeline runs its agents in order: each agent receives the previous
// agent's output as its input message, the first receiving the user message.
type Pipeline struct {
	Name   string
	Agents []*Agent
}

// Validate checks the pipeline and all member agents.
func (p *Pipeline) Validate() error {
	if p.Name == "" {
		return errors.New("pipeline name is required")
	}
	if len(p.Agents) == 0 {
		return errors.New("pipeline needs at least one agent")
	}
	for _, a := range p.Agents {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Coordinator fans the user message out to specialist agents and then runs
// a synthesis agent over their combined outputs.
type Coordinator struct {
	Name        string
	Specialists []*Agent
	Synthesizer *Agent
}

// Validate checks the coordinator and all member agents.
func (c *Coordinator) Validate() error {
	if c.Name == "" {
		return errors.New("coordinator name is required")
	}
	if len(c.Specialists) == 0 {
		return errors.New("coordinator needs at least one specialist")
	}
	for _, a := range c.Specialists {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	if c.Synthesizer == nil {
		return errors.New("coordinator needs a synthesizer agent")
	}
	return c.Synthesizer.Validate()
}
