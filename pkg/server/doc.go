// Package server serves the wizard as server-rendered HTML over HTTP.
//
// Each visitor gets a session holding one wizard.Wizard. Every wizard
// operation maps to a form post; the page is re-rendered after a redirect so
// the browser needs no script. Rejected operations re-render the page with a
// notice and status 422.
package server
