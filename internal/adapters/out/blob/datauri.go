// Package blob implements the BlobStorage port on Google Cloud Storage.
// Inbound artifact payloads arrive as base64 data URIs and are decoded
// locally before any network call.
package blob

import (
	"encoding/base64"
	"strings"

	"lastmile/internal/pkg/errs"
)

// decodeDataURI extracts the binary body of a base64 data URI
// ("data:image/png;base64,...."). The media type in the header is ignored;
// callers decide the stored content type. Malformed payloads are rejected
// here so a bad submission never reaches the bucket.
func decodeDataURI(payload string) ([]byte, error) {
	header, body, found := strings.Cut(payload, ",")
	if !found {
		return nil, errs.NewValueIsInvalidError("payload")
	}

	if !strings.HasPrefix(header, "data:") {
		return nil, errs.NewValueIsInvalidError("payload")
	}

	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, errs.NewValueIsInvalidError("payload")
	}

	if len(raw) == 0 {
		return nil, errs.NewValueIsInvalidError("payload")
	}

	return raw, nil
}
