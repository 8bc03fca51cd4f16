package control

import (
	"time"

	"github.com/AscendTech4H/iqclaw/screen"
)

//InputEvent is something the loop reacts to. The set of events is closed.
type InputEvent interface {
	inputEvent()
}

//Tick is the periodic drive poll carrying the two drive axes
type Tick struct {
	At   time.Time
	A, B int
}

//ClawAxisChanged reports a new claw axis value and the claw position at that moment
type ClawAxisChanged struct {
	At       time.Time
	Value    int
	Position float64 //degrees
}

//DistanceChanged reports a new sonar reading
type DistanceChanged struct {
	At       time.Time
	Distance int //mm
	Found    bool
}

//BypassToggled flips the auto-grab bypass
type BypassToggled struct{}

//PageSelected switches the debug screen
type PageSelected struct {
	Page screen.Page
}

//RemoteControl enables or disables driving from the controller
type RemoteControl struct {
	Enabled bool
}

func (Tick) inputEvent()            {}
func (ClawAxisChanged) inputEvent() {}
func (DistanceChanged) inputEvent() {}
func (BypassToggled) inputEvent()   {}
func (PageSelected) inputEvent()    {}
func (RemoteControl) inputEvent()   {}
