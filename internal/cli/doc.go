// Package cli handles command-line argument parsing and validation for the
// main application entrypoint.
package cli
