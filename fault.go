package sqlcell

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/nao1215/sqlcell/domain/model"
)

// WithFaultTranslator runs fn with the fault translator installed.
//
// While fn runs, Int24 and UInt24 division by zero returns ErrDivisionByZero,
// and a runtime integer-divide panic raised by fn is recovered into
// ErrDivisionByZero. Any other panic is propagated. The translator is released
// on every path. Scopes may overlap across goroutines; the translator stays
// installed until the last of them returns.
func WithFaultTranslator(fn func() error) (err error) {
	guard := model.InstallFaultTranslator()
	defer func() {
		r := recover()
		releaseErr := guard.Release()
		if r != nil {
			re, ok := r.(runtime.Error)
			if !ok || !strings.Contains(re.Error(), "integer divide by zero") {
				panic(r)
			}
			err = fmt.Errorf("%w: %s", ErrDivisionByZero, re.Error())
		}
		if err == nil && releaseErr != nil && !errors.Is(releaseErr, model.ErrFaultGuardOrder) {
			err = releaseErr
		}
	}()
	return fn()
}
