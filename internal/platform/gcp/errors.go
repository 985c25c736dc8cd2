package gcp

import (
	"errors"

	"cloud.google.com/go/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// hasCode reports whether err carries one of the given gRPC codes.
// status.Code understands wrapped errors and the SDKs' apierror type.
func hasCode(err error, cs ...codes.Code) bool {
	if err == nil {
		return false
	}
	code := status.Code(err)
	for _, c := range cs {
		if code == c {
			return true
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return hasCode(err, codes.NotFound) || errors.Is(err, storage.ErrBucketNotExist)
}

// IsAlreadyExists checks if a create lost a race with another writer.
func IsAlreadyExists(err error) bool {
	return hasCode(err, codes.AlreadyExists)
}

// IsConflict checks if an error indicates a concurrent modification, such
// as an IAM write with a stale etag.
func IsConflict(err error) bool {
	return hasCode(err, codes.Aborted)
}

// IsPermissionDenied checks if the caller lacks IAM permission.
func IsPermissionDenied(err error) bool {
	return hasCode(err, codes.PermissionDenied, codes.Unauthenticated)
}

// isTransient checks if an error is worth retrying.
func isTransient(err error) bool {
	return hasCode(err, codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded)
}
