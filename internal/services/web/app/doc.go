// Package app composes web modules into the root HTTP handler.
package app
