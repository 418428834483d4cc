package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/uberjump/internal/core"
	"github.com/vovakirdan/uberjump/internal/object"
)

// Visual characters for rendering
const (
	PlayerChar        = '●'
	StarChar          = '★'
	SpecialStarChar   = '✦'
	PlatformChar      = '▀'
	BreakPlatformChar = '▚'
	BranchChar        = '━'
	SpeckChar         = '·'
)

// startPromptY is the world height of the start prompt.
const startPromptY = 180.0

// Render draws the current run into the screen buffer.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	if s.engine == nil {
		return
	}

	for _, sp := range s.scenery.specks {
		col, row := s.cell(dst, sp.X, sp.Y+s.offsets.Background)
		dst.SetColor(col, row, SpeckChar, core.ColorGray)
	}

	s.drawBranches(dst)

	s.objects.Each(func(o object.Object) {
		switch o.Kind {
		case object.KindStar:
			ch, c := StarChar, core.ColorBrightYellow
			if o.Star == object.StarSpecial {
				ch, c = SpecialStarChar, core.ColorMagenta
			}
			col, row := s.cell(dst, o.Position.X(), o.Position.Y()+s.offsets.Foreground)
			dst.SetColor(col, row, ch, c)
		case object.KindPlatform:
			ch, c := PlatformChar, core.ColorGreen
			if o.Platform == object.PlatformBreak {
				ch, c = BreakPlatformChar, core.ColorOrange
			}
			cols := max(1, int(math.Round(s.cfg.Physics.PlatformWidth/UnitsPerCol)))
			left, row := s.cell(dst, o.Position.X()-s.cfg.Physics.PlatformWidth/2, o.Position.Y()+s.offsets.Foreground)
			for i := 0; i < cols; i++ {
				dst.SetColor(left+i, row, ch, c)
			}
		}
	})

	p := s.player()
	col, row := s.cell(dst, p.Position.X(), p.Position.Y()+s.offsets.Foreground)
	dst.SetColor(col, row, PlayerChar, core.ColorBrightCyan)

	s.drawHUD(dst)

	if !s.active {
		_, row := s.cell(dst, 0, startPromptY)
		dst.DrawTextCentered(row, "TAP SPACE TO START", core.ColorBrightWhite)
		dst.DrawTextCentered(row+1, "←/→ tilt  ↓ level", core.ColorGray)
	}

	if s.paused {
		s.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if s.gameOver {
		title := "GAME OVER"
		if s.completed {
			title = "LEVEL COMPLETE"
		}
		s.drawCenteredMessage(dst, title,
			fmt.Sprintf("Score: %d  High: %d", s.state.Score, s.state.HighScore),
			"R restart  B menu")
	}
}

// cell maps a world position on screen (layer offset already applied) to
// a column and row. The bottom row is world height 0.
func (s *Session) cell(dst *core.Screen, x, y float64) (int, int) {
	col := int(math.Floor(x / UnitsPerCol))
	row := dst.Height() - 1 - int(math.Floor(y/UnitsPerRow))
	return col, row
}

func (s *Session) drawBranches(dst *core.Screen) {
	length := max(3, dst.Width()/5)
	for _, b := range s.scenery.branches {
		_, row := s.cell(dst, 0, b.Y+s.offsets.Midground)
		x := 0
		if b.Right {
			x = dst.Width() - length
		}
		dst.DrawText(x, row, strings.Repeat(string(BranchChar), length), core.ColorGreen)
	}
}

func (s *Session) drawHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("%c X %d", StarChar, s.state.Stars), core.ColorBrightYellow)
	score := fmt.Sprintf("%d", s.state.Score)
	dst.DrawText(dst.Width()-len(score)-1, 0, score, core.ColorBrightWhite)
}

// drawCenteredMessage displays a boxed message in the center of the screen.
func (s *Session) drawCenteredMessage(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorBrightYellow
		}
		dst.DrawTextCentered(box.Y+1+i, l, c)
	}
}
