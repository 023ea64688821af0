//go:build release

package connectivity

const strictContracts = false
