// Package orchestrator renders wizard views through a renderer registry,
// applying the layout and any view transformers first. It gives callers that
// only need output (the CLI, tests, embedding applications) a single entry
// point with the built-in renderers preregistered.
package orchestrator
