// Package logging builds the zerolog logger used across desergen.
package logging
