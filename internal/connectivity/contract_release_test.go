//go:build release

package connectivity

import (
	"testing"

	"github.com/alexiusacademia/gorcd/internal/development"
	"github.com/stretchr/testify/assert"
)

func TestResolve_ContractViolationsAreNoOps(t *testing.T) {
	r := NewResolver(twoSpan(), nil)

	assert.NotPanics(t, func() {
		assert.Equal(t, Resolution{}, r.Resolve(0, development.Top, development.End1, development.Main))
		assert.Equal(t, development.SteelKind(""), r.Kind(2, development.Top, development.End2, development.Main))
	})
}
