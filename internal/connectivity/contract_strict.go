//go:build !release

package connectivity

const strictContracts = true
