package model

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// FaultHandler converts a synchronous arithmetic fault raised by op into an error.
type FaultHandler func(op string) error

type faultSlot struct {
	handler FaultHandler
}

var (
	// faultMu guards faultStack. The newest installed slot is last.
	faultMu    sync.Mutex
	faultStack []*faultSlot

	// currentFault mirrors the top of faultStack for the arithmetic fast path.
	// nil means no translator is installed and a zero divisor reaches the Go
	// runtime, which panics.
	currentFault atomic.Pointer[faultSlot]
)

// FaultGuard is returned by InstallFaultTranslator and InstallFaultHandler.
// Release uninstalls the handler it installed.
//
//	guard := model.InstallFaultTranslator()
//	defer guard.Release()
type FaultGuard struct {
	slot     *faultSlot
	released bool
}

// InstallFaultTranslator installs the default translator, which turns a zero divisor
// into ErrDivisionByZero.
func InstallFaultTranslator() *FaultGuard {
	return InstallFaultHandler(func(op string) error {
		return fmt.Errorf("%w: %s", ErrDivisionByZero, op)
	})
}

// InstallFaultHandler installs h as the process-wide translator.
// Guards nest: each Release should happen in the reverse order of installation.
func InstallFaultHandler(h FaultHandler) *FaultGuard {
	slot := &faultSlot{handler: h}

	faultMu.Lock()
	defer faultMu.Unlock()
	faultStack = append(faultStack, slot)
	currentFault.Store(slot)
	return &FaultGuard{slot: slot}
}

// Release uninstalls the handler of g; the most recent handler still installed
// becomes active again. Releasing twice is a no-op. Releasing while a later
// guard is still installed removes g all the same and returns
// ErrFaultGuardOrder.
func (g *FaultGuard) Release() error {
	if g == nil {
		return nil
	}

	faultMu.Lock()
	defer faultMu.Unlock()
	if g.released {
		return nil
	}
	g.released = true

	i := slices.Index(faultStack, g.slot)
	if i < 0 {
		return nil
	}
	top := i == len(faultStack)-1
	faultStack = slices.Delete(faultStack, i, i+1)
	if len(faultStack) == 0 {
		currentFault.Store(nil)
	} else {
		currentFault.Store(faultStack[len(faultStack)-1])
	}

	if !top {
		return ErrFaultGuardOrder
	}
	return nil
}

// FaultTranslatorInstalled reports whether a translator is installed.
func FaultTranslatorInstalled() bool {
	return currentFault.Load() != nil
}

// translateFault returns the translated error for op, or nil when no translator
// is installed.
func translateFault(op string) error {
	slot := currentFault.Load()
	if slot == nil {
		return nil
	}
	if err := slot.handler(op); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", ErrDivisionByZero, op)
}
