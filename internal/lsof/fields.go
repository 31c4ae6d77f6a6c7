package lsof

import (
	"bytes"
	"unicode/utf8"
)

// FieldKind identifies one lsof field tag this tool cares about. Everything
// else lsof emits is ignored.
type FieldKind int

const (
	FieldPid FieldKind = iota
	FieldCommand
	FieldNetworkAddress
	FieldTCPState
)

// fieldPrefixes maps each kind to its lsof -F tag prefix. Matching walks the
// table in order, so the multi-byte "TST=" tag sits before the single-letter
// tags and always wins over them.
var fieldPrefixes = []struct {
	kind   FieldKind
	prefix []byte
}{
	{FieldTCPState, []byte("TST=")},
	{FieldPid, []byte("p")},
	{FieldCommand, []byte("c")},
	{FieldNetworkAddress, []byte("n")},
}

// FieldSet holds the recognized fields of one raw line, keyed by kind.
type FieldSet map[FieldKind]string

// DecodeChunk maps one NUL-delimited chunk to a field. Chunks with unknown
// tags or non-UTF-8 payloads yield ok == false; lsof emits plenty of fields
// this tool has no use for, so those are dropped without comment.
func DecodeChunk(chunk []byte) (FieldKind, string, bool) {
	for _, fp := range fieldPrefixes {
		payload, found := bytes.CutPrefix(chunk, fp.prefix)
		if !found {
			continue
		}
		if !utf8.Valid(payload) {
			return 0, "", false
		}
		return fp.kind, string(payload), true
	}
	return 0, "", false
}

// DecodeLine splits one raw line on the NUL field separator and collects the
// recognized fields. A tag repeated within one line keeps the last value.
func DecodeLine(line []byte) FieldSet {
	fields := make(FieldSet)
	for _, chunk := range bytes.Split(line, []byte{0}) {
		if kind, text, ok := DecodeChunk(chunk); ok {
			fields[kind] = text
		}
	}
	return fields
}
