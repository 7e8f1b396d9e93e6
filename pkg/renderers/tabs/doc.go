// Package tabs is a full-screen terminal front end for the wizard built on
// bubbletea. It mirrors the HTML tab bar: every step is a tab, text inputs
// write through to the wizard on each keystroke, and the product pane carries
// the add-another checkbox plus Remove and Next buttons.
package tabs
