package fetch

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/widgetworks/metricfeed/pkg/series"
)

// maxRawMessageLen bounds the error text kept from a non-JSON body.
const maxRawMessageLen = 100

// Classify maps one transport observation to either a decoded series or a
// Failure. The conditions are checked in a fixed order:
//
//	transport error      -> network (retryable)
//	200, body undecodable -> decode (fatal)
//	200, body decodes    -> success
//	400-499              -> client (fatal)
//	500-599              -> server (retryable)
//	anything else        -> unknown (retryable)
func Classify(res *Result, transportErr error) (series.Series, *Failure) {
	if transportErr != nil {
		return nil, &Failure{Kind: FailureNetwork, Err: transportErr}
	}

	switch {
	case res.Status == http.StatusOK:
		s, err := series.Decode(res.Body)
		if err != nil {
			return nil, &Failure{Kind: FailureDecode, Status: res.Status, Err: err}
		}
		return s, nil

	case res.Status >= 400 && res.Status < 500:
		return nil, &Failure{Kind: FailureClient, Status: res.Status, Message: extractMessage(res.Body)}

	case res.Status >= 500 && res.Status < 600:
		return nil, &Failure{Kind: FailureServer, Status: res.Status, Message: extractMessage(res.Body)}

	default:
		return nil, &Failure{Kind: FailureUnknown, Status: res.Status}
	}
}

// extractMessage pulls human-readable error text out of an error response.
// It tries the {error|message} JSON envelope first, then falls back to the
// raw body truncated to maxRawMessageLen. No extractable text is fine; the
// message is simply empty.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
		return ""
	}

	raw := strings.TrimSpace(string(body))
	if len(raw) > maxRawMessageLen {
		raw = raw[:maxRawMessageLen]
		// Don't cut a multi-byte rune in half.
		for len(raw) > 0 && !utf8.ValidString(raw) {
			raw = raw[:len(raw)-1]
		}
	}
	return raw
}
