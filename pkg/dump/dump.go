// Package dump parses the line-delimited data dump published by the game
// server. A dump interleaves three record kinds, one per line, identified
// by a leading type tag: 'w' (world state), 'p' (player), 'a' (alliance).
// The remainder of a line after the first comma is a positional CSV payload.
package dump

import (
	"fmt"
	"strings"
)

// Tags recognized in the dump. Lines with any other tag are skipped.
const (
	tagWorld    = 'w'
	tagPlayer   = 'p'
	tagAlliance = 'a'
)

// ParseError reports a structurally malformed line. Unlike a bad numeric
// field, which decodes to zero, a structural failure aborts the whole run
// because the decoders assume well-formed input.
type ParseError struct {
	LineNo int
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dump line %d: %s: %q", e.LineNo, e.Reason, e.Line)
}

// splitLines splits the dump body on any newline variant (\n, \r, \r\n)
// and drops empty lines.
func splitLines(content string) []string {
	raw := strings.FieldsFunc(content, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	return raw
}

// payload returns the field portion of a classified line, everything after
// the first comma. A recognized line without a delimiter is malformed.
func payload(line string, lineNo int) (string, error) {
	idx := strings.IndexByte(line, ',')
	if idx < 0 {
		return "", &ParseError{LineNo: lineNo, Line: line, Reason: "missing field delimiter"}
	}
	return line[idx+1:], nil
}

// ScanWorld runs the pre-ingestion pass: it extracts only the world line
// so the round and tick are known before anything is decoded or written.
// Each world line overwrites the previous one, so the last in the dump
// wins; a dump normally carries exactly one. Returns nil when the dump
// has no world line at all.
func ScanWorld(content string) (*World, error) {
	var world *World
	for i, line := range splitLines(content) {
		if line[0] != tagWorld {
			continue
		}
		data, err := payload(line, i+1)
		if err != nil {
			return nil, err
		}
		world = DecodeWorld(data, content)
	}
	return world, nil
}

// Parse decodes the full dump into typed records. Lines with unrecognized
// tags are skipped; a recognized line that cannot be split is fatal.
func Parse(content string) (*Records, error) {
	records := &Records{}
	for i, line := range splitLines(content) {
		tag := line[0]
		if tag != tagWorld && tag != tagPlayer && tag != tagAlliance {
			continue
		}
		data, err := payload(line, i+1)
		if err != nil {
			return nil, err
		}
		switch tag {
		case tagWorld:
			records.World = DecodeWorld(data, content)
		case tagPlayer:
			records.Players = append(records.Players, DecodePlayer(data))
		case tagAlliance:
			records.Alliances = append(records.Alliances, DecodeAlliance(data))
		}
	}
	return records, nil
}
