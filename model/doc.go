// Package model defines the normalized request/response types for language
// model backends and the Model interface planning agents call through. The
// model/openai and model/anthropic subpackages adapt the official vendor
// SDKs; MockModel provides deterministic canned completions for tests and
// examples.
package model
