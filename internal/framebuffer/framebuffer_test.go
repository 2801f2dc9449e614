package framebuffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRentThenReturnAllowsSecondRent(t *testing.T) {
	fb := New(4, 4, RGBA8888)
	r, err := fb.Rent()
	require.NoError(t, err)
	require.Len(t, r.Data, 4*4*4)
	r.Return()

	r2, err := fb.Rent()
	require.NoError(t, err)
	require.NotNil(t, r2)
}

func TestDoubleRentConflicts(t *testing.T) {
	fb := New(2, 2, RGBA8888)
	_, err := fb.Rent()
	require.NoError(t, err)

	_, err = fb.Rent()
	require.ErrorIs(t, err, ErrBorrowConflict)
}
