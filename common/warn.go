// Package common carries the cross-cutting pieces shared by every GeoJSON
// entity: the warning channel for non-fatal validation findings and the
// omit-if-null policy applied at the JSON boundary.
package common

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// WarningHandler receives non-fatal validation warnings. Warnings never
// block construction and never convert into errors.
type WarningHandler func(msg string)

var (
	warnMu      sync.RWMutex
	warnHandler WarningHandler = func(msg string) {
		log.Warn().Msg(msg)
	}
)

// SetWarningHandler replaces the handler used by Warnf. Passing nil
// discards warnings entirely.
func SetWarningHandler(h WarningHandler) {
	warnMu.Lock()
	defer warnMu.Unlock()
	warnHandler = h
}

// Warnf formats and delivers a warning to the configured handler.
func Warnf(format string, args ...any) {
	warnMu.RLock()
	h := warnHandler
	warnMu.RUnlock()
	if h != nil {
		h(fmt.Sprintf(format, args...))
	}
}
