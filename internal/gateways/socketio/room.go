package socketio

import "strings"

// roomKey accepts both a bare "chat:<id>" key and the events derived from it.
func roomKey(s string) (string, bool) {
	if !strings.HasPrefix(s, "chat:") {
		return "", false
	}
	s = strings.TrimSuffix(s, ":messages:update")
	s = strings.TrimSuffix(s, ":messages")
	id := strings.TrimPrefix(s, "chat:")
	return s, id != "" && !strings.Contains(id, ":")
}
