// Package mastodon implements the two-call publish surface of a
// Mastodon-compatible server: media upload followed by status creation.
package mastodon
