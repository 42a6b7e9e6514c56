//go:build !sqlcell_debug

package sqlcell

const debugAssertions = false
