// Package environment bundles an authorized calendar client with a
// scenario configuration for evaluation runs.
//
// An Environment is built from a token file and a JSON configuration
// file. Construction fails if either cannot be loaded. Reset is a hook
// for test scaffolding and currently performs no remote calls.
package environment
