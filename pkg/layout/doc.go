// Package layout loads the presentation metadata for the wizard: step
// titles, which fields each step shows, field labels, input types and help
// text. A default layout is embedded; callers may override any part of it
// with YAML or JSON documents.
package layout
