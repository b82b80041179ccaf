// Package dashboard implements the appointment view controller. A Controller
// owns a ViewState (the appointment currently open in the modal and the set of
// actions with a request outstanding) and drives a set of ports: the calendar
// widget, the create/edit modal, toast notifications, blocking prompts and the
// list, history and statistics panels. Every view re-reads server truth after a
// mutation; nothing is patched locally.
//
// Ports are optional. A nil port is skipped, mirroring a page that does not
// carry the corresponding container.
package dashboard
