package lsof

import (
	"bytes"
	"strconv"
)

// tcpStateListen is the only socket state that qualifies a port for the
// inventory. Matching is exact and case-sensitive.
const tcpStateListen = "LISTEN"

// Entry is one process as reported by lsof. Ports keeps distinct listening
// addresses in first-seen order.
type Entry struct {
	PID     int
	Command string
	Ports   []string
}

// Decode turns raw `lsof -F` output into entries, one per process group.
// A group starts at a line carrying a pid field and runs until the next
// such line. Malformed lines and groups contribute nothing; Decode never
// fails, the worst input produces an empty result.
func Decode(raw []byte) []Entry {
	var entries []Entry
	var group []FieldSet

	flush := func() {
		if entry, ok := reduceGroup(group); ok {
			entries = append(entries, entry)
		}
		group = group[:0]
	}

	for _, line := range bytes.Split(raw, []byte{'\n'}) {
		fields := DecodeLine(line)
		if _, ok := fields[FieldPid]; ok {
			flush()
		}
		group = append(group, fields)
	}
	flush()

	return entries
}

// reduceGroup folds the lines of one process group into an Entry. The first
// line must carry a parseable pid and a command; otherwise the whole group
// is dropped rather than partially reported. Every later line contributes a
// port only when it carries both a network address and the LISTEN state.
func reduceGroup(group []FieldSet) (Entry, bool) {
	if len(group) == 0 {
		return Entry{}, false
	}

	header := group[0]
	pidText, ok := header[FieldPid]
	if !ok {
		return Entry{}, false
	}
	command, ok := header[FieldCommand]
	if !ok {
		return Entry{}, false
	}
	pid, err := strconv.Atoi(pidText)
	if err != nil || pid < 0 {
		return Entry{}, false
	}

	var ports []string
	seen := make(map[string]struct{})
	for _, fields := range group[1:] {
		addr, ok := fields[FieldNetworkAddress]
		if !ok || fields[FieldTCPState] != tcpStateListen {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		ports = append(ports, addr)
	}

	return Entry{PID: pid, Command: command, Ports: ports}, true
}
