// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, key handling, and rendering helpers
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewModel(t *testing.T) {
	model := NewModel(nil, 80) // VolumeControl is optional for testing

	if model.volume != 80 {
		t.Errorf("expected volume 80, got %d", model.volume)
	}

	if model.muted {
		t.Error("expected muted to be false initially")
	}

	if model.showDebug {
		t.Error("expected showDebug to be false initially")
	}
}

func TestStatusMsgOutput(t *testing.T) {
	model := NewModel(nil, 100)

	model.applyStatus(StatusMsg{Output: "malgo", Device: "USB DAC", State: "playing"})

	if model.output != "malgo" || model.device != "USB DAC" {
		t.Errorf("unexpected output %q device %q", model.output, model.device)
	}
	if model.state != "playing" {
		t.Errorf("expected state 'playing', got '%s'", model.state)
	}
}

func TestStatusMsgStreamInfo(t *testing.T) {
	model := NewModel(nil, 100)

	model.applyStatus(StatusMsg{
		Format:     "s24_3",
		SampleRate: 96000,
		Channels:   2,
		BitDepth:   24,
	})

	if model.format != "s24_3" {
		t.Errorf("expected format 's24_3', got '%s'", model.format)
	}
	if model.sampleRate != 96000 {
		t.Errorf("expected sampleRate 96000, got %d", model.sampleRate)
	}
	if model.bitDepth != 24 {
		t.Errorf("expected bitDepth 24, got %d", model.bitDepth)
	}
}

func TestMetadataClearing(t *testing.T) {
	model := NewModel(nil, 100)

	model.applyStatus(StatusMsg{Title: "Song", Artist: "Artist", Album: "Album"})
	model.applyStatus(StatusMsg{})

	// Empty strings should not clear (only non-empty values are applied)
	if model.title != "Song" {
		t.Error("title should not be cleared by empty string")
	}
}

func TestStatusMsgWritten(t *testing.T) {
	model := NewModel(nil, 100)

	model.applyStatus(StatusMsg{Written: 4800, Format: "s16", SampleRate: 48000, Channels: 2})
	if model.written != 4800 {
		t.Errorf("expected written 4800, got %d", model.written)
	}

	model.width = 80
	if !strings.Contains(model.View(), "4800 samples (0.1s)") {
		t.Error("expected written samples and duration in view")
	}
}

func TestVolumeKeys(t *testing.T) {
	ctrl := NewVolumeControl()
	var m tea.Model = NewModel(ctrl, 95)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})

	if got := m.(Model).volume; got != 100 {
		t.Errorf("expected volume clamped to 100, got %d", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if !m.(Model).muted {
		t.Error("expected muted after 'm'")
	}

	want := []VolumeChangeMsg{{100, false}, {100, false}, {100, true}}
	for i, w := range want {
		select {
		case got := <-ctrl.Changes:
			if got != w {
				t.Errorf("change %d: expected %+v, got %+v", i, w, got)
			}
		default:
			t.Fatalf("change %d: no volume change sent", i)
		}
	}
}

func TestVolumeDownClamps(t *testing.T) {
	var m tea.Model = NewModel(nil, 3)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	if got := m.(Model).volume; got != 0 {
		t.Errorf("expected volume 0, got %d", got)
	}
}

func TestQuitKey(t *testing.T) {
	ctrl := NewVolumeControl()
	m := NewModel(ctrl, 100)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	select {
	case <-ctrl.Quit:
	default:
		t.Error("expected quit signal on VolumeControl")
	}
}

func TestViewBeforeResize(t *testing.T) {
	if got := NewModel(nil, 100).View(); got != "Loading..." {
		t.Errorf("expected Loading..., got %q", got)
	}
}

func TestTruncateFunction(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"this is longer than allowed", 10, "this is..."},
		{"", 10, ""},
		{"abcd", 4, "abcd"},
		{"abcde", 4, "a..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q",
				tt.input, tt.maxLen, result, tt.expected)
		}
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(50, 100, 10); got != "█████░░░░░" {
		t.Errorf("unexpected bar %q", got)
	}
	if got := renderBar(0, 100, 4); got != "░░░░" {
		t.Errorf("unexpected bar %q", got)
	}
}

func TestChannelNameFunction(t *testing.T) {
	if channelName(1) != "Mono" || channelName(2) != "Stereo" {
		t.Error("unexpected channel names")
	}
}
