// Package contract embeds the OpenAPI description of the booking API consumed
// by the dashboard and validates request and response bodies against it, so a
// malformed payload fails at the boundary with a typed error instead of
// flowing into the views as zero values.
package contract
