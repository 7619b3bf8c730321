// Package publisher runs a single publish attempt for one image file:
// read the bytes, upload them, create a status referencing the upload, and
// archive the file on success. No step is retried.
package publisher
