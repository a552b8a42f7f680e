package countdown

import (
	"testing"

	"multitimer/internal/core/model"
)

func testTimer(duration int) *Timer {
	defaults := model.DefaultTimerDefaults()
	defaults.DurationSeconds = duration
	return newTimer("test-id", defaults)
}

func TestNewTimer_Defaults(t *testing.T) {
	timer := newTimer("test-id", model.DefaultTimerDefaults())

	if timer.State() != model.StateStopped {
		t.Errorf("State = %q, want %q", timer.State(), model.StateStopped)
	}
	if timer.Remaining() != timer.Duration() {
		t.Errorf("Remaining = %d, want %d", timer.Remaining(), timer.Duration())
	}
	if timer.Label() != "New Timer" {
		t.Errorf("Label = %q, want New Timer", timer.Label())
	}
	if timer.Hotkey() != "" {
		t.Errorf("Hotkey = %q, want empty", timer.Hotkey())
	}
}

func TestTimer_StartPauseResume(t *testing.T) {
	timer := testTimer(10)

	timer.Start()
	if timer.State() != model.StateRunning {
		t.Fatalf("State after Start = %q", timer.State())
	}

	timer.Tick()
	timer.Tick()
	if timer.Remaining() != 8 {
		t.Fatalf("Remaining after two ticks = %d, want 8", timer.Remaining())
	}

	timer.Pause()
	if timer.State() != model.StatePaused {
		t.Fatalf("State after Pause = %q", timer.State())
	}
	if timer.Tick() {
		t.Fatal("paused timer completed on Tick")
	}
	if timer.Remaining() != 8 {
		t.Fatalf("paused timer lost time: %d", timer.Remaining())
	}

	timer.Start()
	if timer.State() != model.StateRunning {
		t.Fatalf("State after resume = %q", timer.State())
	}
	if timer.Remaining() != 8 {
		t.Fatalf("resume reset remaining: %d", timer.Remaining())
	}
}

func TestTimer_ToggleMirrorsStartPause(t *testing.T) {
	timer := testTimer(10)

	timer.Toggle()
	if timer.State() != model.StateRunning {
		t.Fatalf("State after first Toggle = %q", timer.State())
	}
	timer.Toggle()
	if timer.State() != model.StatePaused {
		t.Fatalf("State after second Toggle = %q", timer.State())
	}
	timer.Toggle()
	if timer.State() != model.StateRunning {
		t.Fatalf("State after third Toggle = %q", timer.State())
	}
}

func TestTimer_CompletionEdgeFiresOnce(t *testing.T) {
	timer := testTimer(3)
	timer.Start()

	edges := 0
	for i := 0; i < 5; i++ {
		if timer.Tick() {
			edges++
		}
	}

	if edges != 1 {
		t.Fatalf("completion edges = %d, want 1", edges)
	}
	if timer.State() != model.StateCompleted {
		t.Fatalf("State = %q, want %q", timer.State(), model.StateCompleted)
	}
	if timer.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", timer.Remaining())
	}
}

func TestTimer_RestartFromCompleted(t *testing.T) {
	timer := testTimer(2)
	timer.Start()
	timer.Tick()
	timer.Tick()
	if timer.State() != model.StateCompleted {
		t.Fatalf("State = %q, want completed", timer.State())
	}

	timer.Toggle()
	if timer.State() != model.StateRunning {
		t.Fatalf("State after restart = %q", timer.State())
	}
	if timer.Remaining() != 2 {
		t.Fatalf("restart did not refill duration: %d", timer.Remaining())
	}
}

func TestTimer_ResetFromEveryState(t *testing.T) {
	prepare := map[string]func(*Timer){
		"stopped":   func(timer *Timer) {},
		"running":   func(timer *Timer) { timer.Start(); timer.Tick() },
		"paused":    func(timer *Timer) { timer.Start(); timer.Tick(); timer.Pause() },
		"completed": func(timer *Timer) { timer.Start(); timer.Tick(); timer.Tick(); timer.Tick() },
	}

	for name, setup := range prepare {
		timer := testTimer(3)
		setup(timer)
		timer.Reset()
		if timer.State() != model.StateStopped {
			t.Errorf("%s: State after Reset = %q", name, timer.State())
		}
		if timer.Remaining() != 3 {
			t.Errorf("%s: Remaining after Reset = %d, want 3", name, timer.Remaining())
		}
	}
}

func TestTimer_StartWhileRunningIsNoOp(t *testing.T) {
	timer := testTimer(10)
	timer.Start()
	timer.Tick()

	timer.Start()
	if timer.Remaining() != 9 {
		t.Fatalf("Start on a running timer changed remaining: %d", timer.Remaining())
	}
}

func TestTimer_DisplayTime(t *testing.T) {
	cases := []struct {
		remaining int
		want      string
	}{
		{0, "00:00"},
		{45, "00:45"},
		{240, "04:00"},
		{3599, "59:59"},
	}

	for _, tc := range cases {
		timer := testTimer(tc.remaining)
		if tc.remaining == 0 {
			timer.remaining = 0
		}
		if got := timer.DisplayTime(); got != tc.want {
			t.Errorf("DisplayTime(%d) = %q, want %q", tc.remaining, got, tc.want)
		}
	}
}

func TestTimer_ConfigRoundTrip(t *testing.T) {
	source := model.TimerConfig{
		ID:              "abc",
		Label:           "Pearl",
		DurationSeconds: 240,
		Hotkey:          "ctrl+1",
		VisualAlerts:    model.VisualAlerts{FlashNumbers: true},
		AudioAlert:      model.AudioAlert{Enabled: true, FilePath: "chime.wav", Volume: 70},
	}

	timer := newTimerFromConfig(source)
	if got := timer.Config(); got != source {
		t.Fatalf("Config = %+v, want %+v", got, source)
	}
}
