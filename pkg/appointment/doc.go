// Package appointment defines the client-side view of the booking domain: the
// calendar-shaped events returned by the appointments endpoint, cancelled
// history rows, clients offered for assignment, role-shaped statistics and the
// typed request bodies sent back to the server. Instants travel as strings on
// the wire; helpers in this package parse them leniently and format them the
// way the backend expects, so callers never handle raw layouts.
package appointment
