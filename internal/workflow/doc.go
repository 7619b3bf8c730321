// Package workflow drives the publish loop: it owns the in-memory work
// queue, reloads it from the scanner when drained, hands one file per cycle
// to the publisher, and consumes the entry regardless of outcome. A
// single-flight guard keeps ticks from ever overlapping a running cycle.
package workflow
