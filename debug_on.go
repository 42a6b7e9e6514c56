//go:build sqlcell_debug

package sqlcell

// debugAssertions enables the precondition checks of the Fast accessors.
const debugAssertions = true
