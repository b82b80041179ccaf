// Package api is the typed HTTP client for the booking backend consumed by the
// dashboard. Every call validates its payloads against the embedded contract
// and reports failures as one of three typed errors: RequestError for
// rejections the server explained, TransportError when no response arrived,
// and DecodeError when a response could not be understood.
package api
