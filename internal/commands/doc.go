// Package commands defines the command-line interface.
package commands
