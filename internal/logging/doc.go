// Package logging provides the logging interface used across rangeprint.
// It abstracts the underlying implementation so the coordinator and the
// application layer log through one small interface, backed by zerolog in
// production and by the standard log package where a plain writer is enough.
package logging
