//go:build debug

package searcher

const debugAssertions = true
