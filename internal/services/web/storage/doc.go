// Package storage declares persistence contracts for the submission outcome
// log.
//
// The log records how each prediction attempt ended. It never stores form
// input or prediction results.
package storage
