package ports

import "context"

// BlobStorage is the object-storage collaborator: it converts an inbound
// encoded image payload (a self-describing data URI) into a durable,
// publicly retrievable URL. Implementations validate and decode the payload
// before any network call and never retry internally; retry policy, if any,
// belongs to callers.
type BlobStorage interface {
	// Upload decodes the data-URI payload and writes one object, returning
	// its public URL. objectName must be unique per subject and submission
	// to avoid overwrite races between concurrent submissions.
	Upload(ctx context.Context, objectName, contentType, payload string) (string, error)
}
