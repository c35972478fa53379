// Package config loads Furrow's YAML configuration and the .env files that
// carry provider API keys. Existing environment variables always win over
// .env contents.
package config
