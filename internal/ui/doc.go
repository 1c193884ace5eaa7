// Package ui is the Bubble Tea browser for the redirect API.
//
// The model renders one page of redirects from the shared state.Store and
// never fetches pages itself: paging moves the Pager's cursor and the
// background poller does the fetching. Adds and deletes go through the Editor
// as tea.Cmds, and a successful change asks the Pager to refresh.
package ui
