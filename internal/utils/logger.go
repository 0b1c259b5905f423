package utils

import (
	"log"
	"strings"
)

// LogEvent writes one application log line tagged with the originating
// module, the action taken and the request id, so every line belonging to
// a request can be grepped together. Keep message summarized and free of
// credentials or raw payloads.
func LogEvent(requestID, module, action, message string) {
	log.Printf("[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(module), action, strings.TrimSpace(requestID), message)
}
