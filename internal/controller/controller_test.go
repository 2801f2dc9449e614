package controller

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	s := New()
	s.SetButton(ButtonA, true)
	s.SetButton(ButtonB, true)
	s.Write(true)
	require.Equal(t, uint8(1), s.Read())
	require.Equal(t, uint8(1), s.Read())
}

func TestShiftsOutEightBitsThenOnes(t *testing.T) {
	s := New()
	s.SetButtons([8]bool{true, false, true, false, false, false, false, false})
	s.Write(true)
	s.Write(false)
	var bits []uint8
	for i := 0; i < 9; i++ {
		bits = append(bits, s.Read())
	}
	require.Equal(t, []uint8{1, 0, 1, 0, 0, 0, 0, 0, 1}, bits)
}
