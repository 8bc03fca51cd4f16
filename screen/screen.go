//Package screen renders the robot's four line debug screen.
package screen

import (
	"fmt"
	"strings"
)

//Page selects which diagnostic pair is shown on lines 3 and 4
type Page uint8

const (
	PageClaw Page = iota
	PageVisual
)

func (p Page) String() string {
	switch p {
	case PageClaw:
		return "claw"
	case PageVisual:
		return "visual"
	default:
		return fmt.Sprintf("page(%d)", uint8(p))
	}
}

//Readings are the raw device values the screen displays
type Readings struct {
	Battery      int //percent
	ClawSpinning bool
	ClawVelocity int //percent
	ObjectFound  bool
	Distance     int //mm
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

//Render lays out the screen. Line 1 is the title, line 2 the battery level and
//lines 3-4 the pair selected by page.
func Render(title string, page Page, r Readings) [4]string {
	lines := [4]string{
		title,
		fmt.Sprintf("Battery: %d%%", r.Battery),
	}
	switch page {
	case PageVisual:
		lines[2] = fmt.Sprintf("Object found: %d", b2i(r.ObjectFound))
		lines[3] = fmt.Sprintf("Distance: %dmm", r.Distance)
	default:
		lines[2] = fmt.Sprintf("Spinning: %d", b2i(r.ClawSpinning))
		lines[3] = fmt.Sprintf("Claw Velocity: %d", r.ClawVelocity)
	}
	return lines
}

//Text joins rendered lines with newlines
func Text(lines [4]string) string {
	return strings.Join(lines[:], "\n") + "\n"
}
