// Package file stores opaque objects under string keys on the local
// filesystem or in S3-compatible object storage.
//
// Both backends implement Storage:
//
//	local, err := file.NewLocalStorage("data", "/files/")
//	s3store, err := file.NewS3Storage(ctx, file.S3Config{
//		Bucket: "rollups",
//		Region: "eu-central-1",
//	})
//
//	obj, err := store.Put(ctx, "archives/01-15-2024/Rollup_Messages_01-15-2024.zip",
//		bytes.NewReader(data), "application/zip")
//
// Keys use forward slashes. Keys that are empty, absolute after cleaning or
// escape the storage root are rejected with ErrInvalidPath. LocalStorage
// writes through a temporary file and a rename, so readers never observe a
// half-written object.
//
// S3 errors are classified into the package errors (ErrFileNotFound,
// ErrAccessDenied, ErrBucketNotFound, ...) so callers can branch with
// errors.Is regardless of the backend.
package file
