// Package config loads the project configuration: <root>/.schemagen.yaml,
// SCHEMAGEN_* environment variables and a .env file in the project root,
// layered over built-in defaults. The config file is validated against an
// embedded JSON Schema before it is read.
package config
