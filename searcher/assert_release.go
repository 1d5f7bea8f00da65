//go:build !debug

package searcher

const debugAssertions = false
