package apu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWritingPulseTimerHighLoadsLengthCounterAndRestartsDuty(t *testing.T) {
	a := New()
	a.WriteRegister(0x4003, 0x08) // length index 1 -> 254
	require.Equal(t, uint8(254), a.pulse1.lengthCounter)
	require.Zero(t, a.pulse1.dutyIndex)
}

func TestChannelEnableClearsLengthCounterWhenDisabled(t *testing.T) {
	a := New()
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4003, 0x08)
	require.NotZero(t, a.pulse1.lengthCounter)

	a.WriteRegister(0x4015, 0x00)
	require.Zero(t, a.pulse1.lengthCounter)
}

func TestStatusReadClearsFrameIRQFlag(t *testing.T) {
	a := New()
	a.frameIRQFlag = true

	status := a.ReadStatus()

	require.NotZero(t, status&0x40)
	require.False(t, a.frameIRQFlag)
}

func TestFourStepFrameSequencerFiresIRQAtEndOfFrame(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x00) // 4-step, IRQ enabled

	for i := 0; i < 29830; i++ {
		a.stepFrameCounter()
	}

	require.True(t, a.frameIRQFlag)
}

func TestFiveStepModeNeverSetsFrameIRQ(t *testing.T) {
	a := New()
	a.WriteRegister(0x4017, 0x80) // 5-step mode

	for i := 0; i < 40000; i++ {
		a.stepFrameCounter()
	}

	require.False(t, a.frameIRQFlag)
}

func TestDMCFetcherRequestsThenCompletesAsynchronously(t *testing.T) {
	a := New()
	mem := map[uint16]uint8{0xC000: 0xAA}
	var requested uint16
	requestCount := 0
	a.SetDMCFetcher(func(addr uint16) {
		requested = addr
		requestCount++
	})

	a.WriteRegister(0x4012, 0x00) // sample address $C000
	a.WriteRegister(0x4013, 0x00) // sample length 1 byte
	a.WriteRegister(0x4015, 0x10) // enable DMC, starts playback

	require.Equal(t, uint16(0xC000), a.dmc.currentAddress)
	require.Equal(t, uint16(1), a.dmc.bytesRemaining)

	// The timer must actually fire a reload request before any byte lands;
	// force the buffer-empty, bits-exhausted state stepDMCTimer checks for
	// and let the rate timer expire on this call.
	a.dmc.sampleBufferEmpty = false
	a.dmc.sampleBufferBits = 0
	a.dmc.timerCounter = 0
	a.stepDMCTimer(&a.dmc)

	require.Equal(t, 1, requestCount, "an empty buffer with bytes remaining must request a fetch")
	require.Equal(t, uint16(0xC000), requested)
	require.True(t, a.dmc.fetchPending)
	require.Equal(t, uint16(1), a.dmc.bytesRemaining, "bytesRemaining must not drop until the fetch completes")

	a.CompleteDMCFetch(mem[requested])

	require.False(t, a.dmc.fetchPending)
	require.Equal(t, uint8(0xAA), a.dmc.sampleBuffer)
	require.Equal(t, uint8(8), a.dmc.sampleBufferBits)
	require.Equal(t, uint16(0), a.dmc.bytesRemaining)
	require.Equal(t, uint16(0xC001), a.dmc.currentAddress)
}

func TestCompleteDMCFetchIgnoresStaleCompletionAfterDisable(t *testing.T) {
	a := New()
	a.SetDMCFetcher(func(addr uint16) {})
	a.WriteRegister(0x4012, 0x00)
	a.WriteRegister(0x4013, 0x00)
	a.WriteRegister(0x4015, 0x10)

	a.dmc.fetchPending = true
	a.WriteRegister(0x4015, 0x00) // disable mid-fetch: bytesRemaining -> 0

	require.NotPanics(t, func() { a.CompleteDMCFetch(0x55) })
	require.False(t, a.dmc.fetchPending)
	require.Equal(t, uint16(0), a.dmc.bytesRemaining)
}

func TestMixChannelsStaysWithinRange(t *testing.T) {
	a := New()
	sample := a.mixChannels(15, 15, 15, 15, 127)
	require.GreaterOrEqual(t, sample, float32(-1.0))
	require.LessOrEqual(t, sample, float32(1.0))
}

func TestSetModelSwitchesToPALRateTablesAndClock(t *testing.T) {
	a := New()
	a.SetModel(PAL)

	require.Equal(t, 1662607.0, a.cpuFrequency)
	require.Equal(t, &noisePeriodTablePAL, a.noisePeriods)
	require.Equal(t, &dmcRateTablePAL, a.dmcRates)

	a.WriteRegister(0x400E, 0x00) // noise period index 0
	a.noise.timerCounter = 0
	a.stepNoiseTimer(&a.noise)
	require.Equal(t, noisePeriodTablePAL[0], a.noise.timerCounter)
}
