// Package binder turns HTTP requests into typed values for handler.Wrap.
//
// Form reads url-encoded and multipart values by `form` tag, File reads
// multipart uploads by `file` tag and JSON decodes application/json bodies.
// A binder that does not handle the request's content type returns
// ErrBinderNotApplicable and is skipped.
package binder
