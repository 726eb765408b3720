package hw

import "testing"

func TestControllerSerialOrder(t *testing.T) {
	var pad Controller
	pad.SetButton(BtnA, true)
	pad.SetButton(BtnStart, true)
	pad.SetButton(BtnRight, true)

	// Strobe high then low latches the state.
	pad.Write(1)
	pad.Write(0)

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1} // A,B,Select,Start,Up,Down,Left,Right
	for i, w := range want {
		if got := pad.Read(); got != w {
			t.Errorf("read %d (%s) = %d, want %d", i, Button(i), got, w)
		}
	}

	// Exhausted reads return 1.
	for i := 0; i < 3; i++ {
		if got := pad.Read(); got != 1 {
			t.Errorf("exhausted read = %d, want 1", got)
		}
	}
}

func TestControllerStrobeHigh(t *testing.T) {
	var pad Controller
	pad.SetButton(BtnA, true)
	pad.Write(1)

	// While strobed, every read reports A.
	for i := 0; i < 4; i++ {
		if got := pad.Read(); got != 1 {
			t.Errorf("strobed read = %d, want 1", got)
		}
	}

	pad.SetButton(BtnA, false)
	if got := pad.Read(); got != 0 {
		t.Errorf("strobed read after release = %d, want 0", got)
	}
}

func TestControllerLatchTiming(t *testing.T) {
	var pad Controller
	pad.Write(1)
	pad.Write(0)
	// Presses after the latch are invisible until the next strobe.
	pad.SetButton(BtnA, true)
	if got := pad.Read(); got != 0 {
		t.Errorf("read = %d, press should not be latched yet", got)
	}
}
