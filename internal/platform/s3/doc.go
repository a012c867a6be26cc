// Package s3 provides a client for the artifacts bucket.
//
// It uploads synthesized templates and build specs so that a deployment
// pipeline can pick them up. Uploads run concurrently and are retried with
// exponential backoff; access and missing-bucket errors are not retried.
package s3
