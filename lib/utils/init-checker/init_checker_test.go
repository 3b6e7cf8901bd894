package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface{ Name() string }

type impl struct{}

func (i *impl) Name() string { return "impl" }

func TestCheckInit(t *testing.T) {
	t.Run("initialized dependencies pass", func(t *testing.T) {
		var p provider = &impl{}
		require.NotPanics(t, func() { CheckInit("provider", p, "value", impl{}) })
	})
	t.Run("nil interface", func(t *testing.T) {
		var p provider
		require.Panics(t, func() { CheckInit("provider", p) })
	})
	t.Run("typed nil pointer", func(t *testing.T) {
		var ptr *impl
		var p provider = ptr
		require.Panics(t, func() { CheckInit("provider", p) })
	})
	t.Run("odd arguments", func(t *testing.T) {
		require.Panics(t, func() { CheckInit("provider") })
	})
}
