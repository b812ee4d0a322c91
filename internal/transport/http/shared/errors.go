package shared

import (
	"errors"
	"log"
	"net/http"

	"hrdash/internal/hrapi"
	"hrdash/internal/transport/http/api"
)

// FailUpstream maps a backend call failure onto the response envelope. A
// non-2xx upstream status is mirrored with the server-supplied message
// when one exists; transport failures become a 502 with generic text.
func FailUpstream(w http.ResponseWriter, err error, fallback, requestID string) {
	var statusErr *hrapi.StatusError
	if errors.As(err, &statusErr) {
		message := statusErr.Message
		if message == "" {
			message = fallback
		}
		log.Printf("hr api request failed: %v", err)
		api.Fail(w, statusErr.StatusCode, "upstream_error", message, requestID)
		return
	}

	log.Printf("hr api unreachable: %v", err)
	api.Fail(w, http.StatusBadGateway, "upstream_unreachable", fallback, requestID)
}
