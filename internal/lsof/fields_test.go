package lsof

import "testing"

func TestDecodeChunkKnownPrefixes(t *testing.T) {
	cases := []struct {
		chunk string
		kind  FieldKind
		text  string
	}{
		{"p1234", FieldPid, "1234"},
		{"csshd", FieldCommand, "sshd"},
		{"n0.0.0.0:22", FieldNetworkAddress, "0.0.0.0:22"},
		{"TST=LISTEN", FieldTCPState, "LISTEN"},
		{"TST=ESTABLISHED", FieldTCPState, "ESTABLISHED"},
	}
	for _, tc := range cases {
		kind, text, ok := DecodeChunk([]byte(tc.chunk))
		if !ok {
			t.Fatalf("chunk %q not decoded", tc.chunk)
		}
		if kind != tc.kind || text != tc.text {
			t.Fatalf("chunk %q: got kind=%d text=%q, want kind=%d text=%q", tc.chunk, kind, text, tc.kind, tc.text)
		}
	}
}

func TestDecodeChunkUnknownTagIgnored(t *testing.T) {
	for _, chunk := range []string{"R1", "fcwd", "u501", "PTCP", ""} {
		if _, _, ok := DecodeChunk([]byte(chunk)); ok {
			t.Fatalf("chunk %q should not decode", chunk)
		}
	}
}

func TestDecodeChunkTCPStateBeatsShorterTags(t *testing.T) {
	// "TST=" shares no first byte with p/c/n today, but the table order
	// must keep it in front regardless.
	kind, text, ok := DecodeChunk([]byte("TST=LISTEN"))
	if !ok || kind != FieldTCPState || text != "LISTEN" {
		t.Fatalf("got kind=%d text=%q ok=%t", kind, text, ok)
	}
}

func TestDecodeChunkInvalidUTF8Dropped(t *testing.T) {
	if _, _, ok := DecodeChunk([]byte{'c', 0xff, 0xfe}); ok {
		t.Fatal("invalid UTF-8 payload should not decode")
	}
}

func TestDecodeLineCollectsFields(t *testing.T) {
	fields := DecodeLine([]byte("n127.0.0.1:8080\x00TST=LISTEN"))
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %v", fields)
	}
	if fields[FieldNetworkAddress] != "127.0.0.1:8080" {
		t.Fatalf("unexpected address %q", fields[FieldNetworkAddress])
	}
	if fields[FieldTCPState] != "LISTEN" {
		t.Fatalf("unexpected state %q", fields[FieldTCPState])
	}
}

func TestDecodeLineRepeatedTagLastWins(t *testing.T) {
	fields := DecodeLine([]byte("cfirst\x00csecond"))
	if fields[FieldCommand] != "second" {
		t.Fatalf("expected last value to win, got %q", fields[FieldCommand])
	}
}

func TestDecodeLineEmpty(t *testing.T) {
	if fields := DecodeLine(nil); len(fields) != 0 {
		t.Fatalf("expected empty field set, got %v", fields)
	}
}
