// Package services implements the ideas API use cases on top of the
// repository manager: idea submission and listing, profile upserts and
// presigned image uploads to S3-compatible storage.
package services
