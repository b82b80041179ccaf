// Package panels is the HTML frontend of the dashboard. It implements the
// dashboard view ports by rendering each region (calendar, modal, list,
// cancelled history, statistics, toasts) through pongo2 templates styled with
// go-theme tokens, and keeps the latest markup per region in a Document that
// can be served or written out as a standalone page.
package panels
