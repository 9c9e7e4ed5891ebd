package storage

import (
	"fmt"

	"github.com/fhuszti/blog-media-go/internal/usecase/media"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return media.ErrObjectNotFound
	case "NoSuchBucket":
		return media.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return media.ErrUnauthorized
	default:
		// connection refused, timeouts and everything else the store can
		// throw collapse into one retriable category for callers
		return fmt.Errorf("%w: %v", media.ErrStorageUnavailable, err)
	}
}
