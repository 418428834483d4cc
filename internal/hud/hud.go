// Package hud carries score and star updates out of a session to whatever
// displays them: the terminal HUD, a websocket overlay, logs.
package hud

// State is one HUD snapshot.
type State struct {
	Level     string `json:"level"`
	Score     int    `json:"score"`
	Stars     int    `json:"stars"`
	HighScore int    `json:"highScore"`
	GameOver  bool   `json:"gameOver"`
	Completed bool   `json:"completed"`
}

// Sink consumes HUD updates. Sessions call Update only when the state changed.
type Sink interface {
	Update(s State)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(State)

func (f SinkFunc) Update(s State) { f(s) }

// Multi fans an update out to several sinks in order. Nil sinks are skipped.
func Multi(sinks ...Sink) Sink {
	var out multi
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multi []Sink

func (m multi) Update(s State) {
	for _, sink := range m {
		sink.Update(s)
	}
}

// Discard drops every update.
var Discard Sink = SinkFunc(func(State) {})
