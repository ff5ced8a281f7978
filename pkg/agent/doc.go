// Package agent is a thin orchestration layer over the Gemini API for the
// demo commands: declarative agent definitions, in-memory sessions, and a
// runner that executes agents sequentially or through a coordinator.
//
// The heavy lifting (model invocation, grounding via search) happens inside
// the provider SDK. This package only wires agents together and routes every
// model call through pkg/ratelimit pacing and pkg/retry rate-limit handling.
package agent
