package control

import (
	"fmt"

	"github.com/AscendTech4H/iqclaw/screen"
)

//Actuator names a motor independent of the port it is wired to
type Actuator uint8

const (
	LeftDrive Actuator = iota
	RightDrive
	Claw
)

func (a Actuator) String() string {
	switch a {
	case LeftDrive:
		return "left_drive"
	case RightDrive:
		return "right_drive"
	case Claw:
		return "claw"
	}
	return fmt.Sprintf("actuator(%d)", uint8(a))
}

//Direction is the way a motor spins for a positive velocity
type Direction int8

const (
	Forward Direction = 1
	Reverse Direction = -1
)

//CommandKind says what a Command asks for
type CommandKind uint8

const (
	Spin CommandKind = iota
	Stop
	ShowScreen
	AutoGrab
)

func (k CommandKind) String() string {
	switch k {
	case Spin:
		return "spin"
	case Stop:
		return "stop"
	case ShowScreen:
		return "show_screen"
	case AutoGrab:
		return "auto_grab"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

//Command is one output of the loop. Actuator, Direction and Velocity apply to
//Spin and Stop; Page applies to ShowScreen.
type Command struct {
	Kind      CommandKind
	Actuator  Actuator
	Direction Direction
	Velocity  int //percent, [-100, 100]
	Page      screen.Page
}

//Signed folds the direction into the velocity
func (c Command) Signed() int {
	return int(c.Direction) * c.Velocity
}

func spin(a Actuator, d Direction, vel int) Command {
	return Command{Kind: Spin, Actuator: a, Direction: d, Velocity: bound(vel)}
}

func stop(a Actuator) Command {
	return Command{Kind: Stop, Actuator: a}
}

func show(p screen.Page) Command {
	return Command{Kind: ShowScreen, Page: p}
}
