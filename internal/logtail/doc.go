// Package logtail reads the tail of bookgrid's log file and formats its
// zap JSON entries for the terminal.
//
// Read keeps a ring buffer of maxLines, so memory stays bounded regardless
// of file size, and returns the lines in file order. A missing file is not
// an error; it simply has no lines yet.
//
// Format decodes one entry and renders it as
//
//	2026-10-18T09:12:03.114+0200 INFO fetched books count=3 mount=4f1c...
//
// with the level colored by severity. Lines that are not JSON pass through
// unchanged.
package logtail
