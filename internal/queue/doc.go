// Package queue holds the in-memory work queue of pending image filenames.
// The posted state of an image lives entirely in the filesystem (source
// directory vs archive directory); the queue only orders one process run's
// work and never survives a restart.
package queue
