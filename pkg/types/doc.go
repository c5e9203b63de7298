// Package types defines the crate entity types, configuration, and
// standard errors shared by the storage layer and the CLI.
package types
