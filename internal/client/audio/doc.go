// Package audio plays synthesized summaries through an external player and
// stores downloaded audio in a local directory or an S3 bucket.
package audio
