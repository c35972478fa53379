package core

import "strings"

// TerminationToken is the default sentinel a model emits instead of a plan
// when a multi-turn plan negotiation is finished.
const TerminationToken = "<exit>"

// HasTermination reports whether content signals termination: the trimmed
// text must start or end with the sentinel. An occurrence strictly in the
// interior does not count.
func HasTermination(content, sentinel string) bool {
	trimmed := strings.TrimSpace(content)
	return strings.HasPrefix(trimmed, sentinel) || strings.HasSuffix(trimmed, sentinel)
}
