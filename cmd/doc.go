// Package cmd implements the shiftcal command line interface.
package cmd
