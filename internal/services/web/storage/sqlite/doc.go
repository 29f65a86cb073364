// Package sqlite provides the submission outcome log backed by SQLite.
package sqlite
