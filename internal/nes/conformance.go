package nes

// RunAutomatedNestest drives the console the way nestest.nes's "automated
// mode" expects: PC is forced to $C000 instead of the reset vector (skipping
// the ROM's interactive menu), and TraceEnabled is turned on so a
// Mesen-compatible trace line can be captured after every instruction. It
// runs until instructionCount instructions have executed or the CPU halts
// on a jam opcode, and returns one trace line per instruction actually run.
func RunAutomatedNestest(console *Console, instructionCount int) []string {
	console.Bus.CPU.SetPC(0xC000)
	console.Bus.CPU.SetStatus(0x24)
	console.Bus.CPU.TraceEnabled = true

	lines := make([]string, 0, instructionCount)
	for i := 0; i < instructionCount && !console.Bus.CPU.Halted(); i++ {
		console.Bus.CPU.StepInstruction()
		lines = append(lines, console.Bus.CPU.Trace())
	}
	return lines
}

// statusMagic0/1/2, stored from statusMagicAddr on, are the three fixed
// bytes a blargg-style instr_test ROM writes once its $6000 status byte is
// meaningful, so a poller never
// mistakes an uninitialized SRAM byte for a real "still running" status.
const (
	statusAddr      = 0x6000
	statusMagicAddr = 0x6001
	statusMagic0    = 0xDE
	statusMagic1    = 0xB0
	statusMagic2    = 0x61
	statusRunning   = 0x80
	statusMsgAddr   = 0x6004
)

// PollStatusProtocol drives the console forward in small bursts and watches
// the $6000-$6004+ SRAM status protocol common to blargg's instr_test-v5,
// apu_test, and ppu_sprite_hit ROMs: $6000 reads back $80 while the test is
// running, a final result code once it finishes (0x00 is success), and
// $6001-$6003 hold a fixed 0xDE 0xB0 0x61 marker confirming the protocol is
// actually in use before any status byte is trusted. A null-terminated
// ASCII message describing the result lives at $6004 onward.
//
// It returns finished=false if maxCycles elapses before the ROM reports
// completion, which callers should treat as a timeout/failure rather than a
// pass.
func PollStatusProtocol(console *Console, maxCycles uint64) (finished bool, code uint8, message string) {
	const pollWindow = 10000
	deadline := console.Bus.CPU.Cycles() + maxCycles

	for console.Bus.CPU.Cycles() < deadline {
		reason := console.Progress(console.Bus.CPU.Cycles() + pollWindow)
		if reason == StopHalted {
			return false, 0, ""
		}
		if !statusProtocolActive(console) {
			continue
		}
		status := console.Bus.Peek(statusAddr)
		if status != statusRunning {
			return true, status, readStatusMessage(console)
		}
	}
	return false, 0, ""
}

func statusProtocolActive(console *Console) bool {
	return console.Bus.Peek(statusMagicAddr) == statusMagic0 &&
		console.Bus.Peek(statusMagicAddr+1) == statusMagic1 &&
		console.Bus.Peek(statusMagicAddr+2) == statusMagic2
}

func readStatusMessage(console *Console) string {
	var msg []byte
	for addr := uint16(statusMsgAddr); addr < 0x7FFF; addr++ {
		b := console.Bus.Peek(addr)
		if b == 0 {
			break
		}
		msg = append(msg, b)
	}
	return string(msg)
}
