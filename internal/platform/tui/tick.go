// Package tui provides the Bubble Tea integration for the jump game.
// It handles the terminal UI loop, input mapping and the tilt sampler.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// generations tags the tick loops of successive game models so a loop left
// over from a previous run never drives a new one.
var generations atomic.Int64

func nextGeneration() int64 {
	return generations.Add(1)
}

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	Gen  int64
	Time time.Time
}

// SampleMsg is sent when the tilt sampler fires.
type SampleMsg struct {
	Gen  int64
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(gen int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// sampleCmd schedules the next tilt sample.
func sampleCmd(gen int64, periodMS int) tea.Cmd {
	if periodMS <= 0 {
		periodMS = 200
	}
	return tea.Tick(time.Duration(periodMS)*time.Millisecond, func(t time.Time) tea.Msg {
		return SampleMsg{Gen: gen, Time: t}
	})
}
