// sid_envelope_test.go - Unit tests for the ADSR envelope, quirks included

package sidgraph

import (
	"testing"
)

// TestAttackRampIsMonotonicToPeak verifies the attack phase never steps
// backwards and terminates exactly at the peak before switching to decay.
func TestAttackRampIsMonotonicToPeak(t *testing.T) {
	e := NewEnvelopeGenerator()
	e.SetADSR(0, 0, 15, 0)
	e.SetGate(true)

	prev := e.Output()
	for cycles := 0; cycles < 5000; cycles++ {
		e.Clock(1)
		cur := e.Output()
		if e.State() == ENV_ATTACK && cur < prev {
			t.Fatalf("attack went backwards: %d -> %d at cycle %d", prev, cur, cycles)
		}
		prev = cur
		if cur == ENV_MAX {
			break
		}
	}
	if prev != ENV_MAX {
		t.Fatalf("attack never reached peak, stopped at %d", prev)
	}
	if e.State() != ENV_DECAY {
		t.Errorf("state at peak = %d, want ENV_DECAY", e.State())
	}
}

// TestDecayStallsAtSustainLevel verifies decay stops at the doubled
// sustain nibble and holds there while the gate stays up.
func TestDecayStallsAtSustainLevel(t *testing.T) {
	e := NewEnvelopeGenerator()
	e.SetADSR(0, 0, 0xa, 0)
	e.SetGate(true)
	e.Clock(20000)

	if got := e.Output(); got != 0xaa {
		t.Fatalf("envelope after decay = %#x, want sustain 0xaa", got)
	}
	e.Clock(20000)
	if got := e.Output(); got != 0xaa {
		t.Errorf("envelope drifted off sustain to %#x", got)
	}
}

// TestReleaseDecaysToZeroAndHolds verifies release runs the exponential
// tail all the way to zero, enters the idle freeze, and stays silent no
// matter how long it clocks.
func TestReleaseDecaysToZeroAndHolds(t *testing.T) {
	e := NewEnvelopeGenerator()
	e.SetADSR(0, 0, 15, 0)
	e.SetGate(true)
	e.Clock(5000)
	if e.Output() != ENV_MAX {
		t.Fatalf("setup failed: envelope = %d, want peak", e.Output())
	}

	e.SetGate(false)
	e.Clock(200000)
	if got := e.Output(); got != 0 {
		t.Fatalf("envelope after full release = %d, want 0", got)
	}
	if e.State() != ENV_IDLE {
		t.Errorf("state after full release = %d, want ENV_IDLE", e.State())
	}
	e.Clock(100000)
	if got := e.Output(); got != 0 {
		t.Errorf("idle envelope moved to %d", got)
	}
}

// TestRisingGateRestartsAttackFromCurrentLevel verifies a re-trigger in
// mid-release resumes the ramp from the current counter value instead of
// snapping to zero.
func TestRisingGateRestartsAttackFromCurrentLevel(t *testing.T) {
	e := NewEnvelopeGenerator()
	e.SetADSR(0, 0, 15, 2)
	e.SetGate(true)
	e.Clock(5000)
	e.SetGate(false)
	e.Clock(3000)

	mid := e.Output()
	if mid == 0 || mid == ENV_MAX {
		t.Fatalf("setup failed: mid-release level = %d", mid)
	}

	e.SetGate(true)
	e.Clock(200)
	if got := e.Output(); got < mid {
		t.Errorf("re-triggered envelope fell from %d to %d", mid, got)
	}
}

// TestRateWriteBelowCounterDelaysNextStep pins the classic delay quirk:
// writing a rate whose compare value sits below the counter's current
// position forces the counter through its 15-bit wrap before the first
// step fires.
func TestRateWriteBelowCounterDelaysNextStep(t *testing.T) {
	e := NewEnvelopeGenerator()
	e.SetADSR(9, 0, 15, 0) // attack compare value 977
	e.SetGate(true)
	e.Clock(500) // counter now at 500, no step yet
	if e.Output() != 0 {
		t.Fatalf("setup failed: envelope stepped early, got %d", e.Output())
	}

	e.SetADSR(0, 0, 15, 0) // attack compare value 9, below the counter

	// Step distance: 9 - 500 + 0x7fff = 32276 cycles.
	e.Clock(32275)
	if got := e.Output(); got != 0 {
		t.Fatalf("envelope stepped %d cycles early, got %d", 1, got)
	}
	e.Clock(1)
	if got := e.Output(); got != 1 {
		t.Fatalf("envelope did not step on the wrap cycle, got %d", got)
	}

	// Control: without the mid-flight write the same rate steps after its
	// plain compare value.
	control := NewEnvelopeGenerator()
	control.SetADSR(0, 0, 15, 0)
	control.SetGate(true)
	control.Clock(9)
	if got := control.Output(); got != 1 {
		t.Errorf("control envelope did not step after 9 cycles, got %d", got)
	}
}

// TestRateWriteOnReloadCycleSlipsOneCycle pins the second timing quirk: a
// rate write landing exactly on the reload cycle slips the next step by
// one cycle.
func TestRateWriteOnReloadCycleSlipsOneCycle(t *testing.T) {
	// Two identically prepared envelopes, clocked from the write instant.
	prep := func() *EnvelopeGenerator {
		e := NewEnvelopeGenerator()
		e.SetADSR(1, 0, 15, 0) // compare value 32
		e.SetGate(true)
		e.Clock(9)             // counter now exactly 9
		e.SetADSR(0, 0, 15, 0) // compare value 9 == counter
		return e
	}

	slipped := prep()
	slipped.Clock(1)
	if got := slipped.Output(); got != 0 {
		t.Fatalf("coincident write did not slip the step, got %d", got)
	}

	onTime := prep()
	onTime.Clock(2)
	if got := onTime.Output(); got != 1 {
		t.Fatalf("slipped step did not fire one cycle late, got %d", got)
	}

	// Control: one cycle short of coincidence steps on schedule.
	control := NewEnvelopeGenerator()
	control.SetADSR(1, 0, 15, 0)
	control.SetGate(true)
	control.Clock(8)
	control.SetADSR(0, 0, 15, 0)
	control.Clock(1)
	if got := control.Output(); got != 1 {
		t.Errorf("control envelope slipped without coincidence, got %d", got)
	}
}

// TestExponentialTailSlowsThroughBreakpoints verifies the release curve
// spends longer per step in its lower segments than its upper ones.
func TestExponentialTailSlowsThroughBreakpoints(t *testing.T) {
	e := NewEnvelopeGenerator()
	e.SetADSR(0, 0, 15, 0)
	e.SetGate(true)
	e.Clock(5000)
	e.SetGate(false)

	cyclesAt := func(target uint8) int {
		total := 0
		for e.Output() != target {
			e.Clock(1)
			total++
			if total > 1000000 {
				t.Fatalf("release never reached %#x", target)
			}
		}
		return total
	}

	upper := cyclesAt(0x5d) // 0xff -> 0x5d at divider 1
	lower := cyclesAt(0x06) // 0x5d -> 0x06 through dividers 2..16
	if lower <= upper {
		t.Errorf("lower release segment (%d cycles) not slower than upper (%d cycles)", lower, upper)
	}
}

// TestADSRSetterClampsRange verifies out-of-range rates behave as their
// clamped values.
func TestADSRSetterClampsRange(t *testing.T) {
	e := NewEnvelopeGenerator()
	e.SetADSR(-3, 99, 200, -1) // clamps to (0, 15, 15, 0)
	e.SetGate(true)
	e.Clock(9)
	if got := e.Output(); got != 1 {
		t.Errorf("clamped attack did not behave as rate 0, got %d", got)
	}
}

// TestResetKeepsADSRProgramming verifies Reset returns to the idle freeze
// without losing the programmed rates.
func TestResetKeepsADSRProgramming(t *testing.T) {
	e := NewEnvelopeGenerator()
	e.SetADSR(0, 5, 9, 3)
	e.SetGate(true)
	e.Clock(3000)

	e.Reset()
	if got := e.Output(); got != 0 {
		t.Fatalf("envelope after reset = %d, want 0", got)
	}
	if e.State() != ENV_IDLE {
		t.Fatalf("state after reset = %d, want ENV_IDLE", e.State())
	}
	e.Clock(10000)
	if got := e.Output(); got != 0 {
		t.Fatalf("idle envelope moved after reset, got %d", got)
	}

	// Rates survive: attack 0 still steps after 9 cycles.
	e.SetGate(true)
	e.Clock(9)
	if got := e.Output(); got != 1 {
		t.Errorf("attack rate lost across reset, envelope = %d", got)
	}
}
