package config

import (
	"github.com/go-drift/rosetta/pkg/element"
	"github.com/go-drift/rosetta/pkg/errors"
	"github.com/go-drift/rosetta/pkg/ui"
)

// Apply installs r's process-wide settings: debug mode, the error log
// handler and the find-object polling interval. It returns a function that
// restores the previous settings.
func Apply(r *Resolved) (restore func()) {
	prevDebug := element.DebugMode
	prevHandler := errors.DefaultHandler
	prevMin, prevMax := ui.FindInterval()

	element.SetDebugMode(r.Debug)
	errors.SetHandler(&errors.LogHandler{Verbose: r.Verbose})
	ui.SetFindInterval(r.FindMinInterval, r.FindMaxInterval)

	return func() {
		element.SetDebugMode(prevDebug)
		errors.SetHandler(prevHandler)
		ui.SetFindInterval(prevMin, prevMax)
	}
}
