// Package cmd implements the zipdir command line interface.
package cmd
