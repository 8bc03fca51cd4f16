//Package control maps controller and sensor input to drive, claw and screen
//commands.
//
//A Loop holds all state that survives between events. It is not safe for
//concurrent use; one goroutine feeds it events in order.
package control

import (
	"time"

	"github.com/AscendTech4H/iqclaw/screen"
)

//Loop is the drive-and-claw control state
type Loop struct {
	lim Limits

	needsStop  bool //stop has not been issued since the drive last moved
	bypass     bool
	remote     bool
	clampUntil time.Time
	page       screen.Page
}

//NewLoop creates a loop with remote control enabled and the claw page selected
func NewLoop(lim Limits) *Loop {
	return &Loop{
		lim:       lim,
		needsStop: true,
		remote:    true,
		page:      screen.PageClaw,
	}
}

//Bypass reports whether auto-grab is bypassed
func (l *Loop) Bypass() bool {
	return l.bypass
}

//Clamping reports whether a claw clamp maneuver is in progress
func (l *Loop) Clamping() bool {
	return !l.clampUntil.IsZero()
}

//Page is the debug page currently selected
func (l *Loop) Page() screen.Page {
	return l.page
}

//RemoteEnabled reports whether controller input drives the robot
func (l *Loop) RemoteEnabled() bool {
	return l.remote
}

//Handle applies one event and returns the commands it produces, in order
func (l *Loop) Handle(ev InputEvent) []Command {
	switch ev := ev.(type) {
	case Tick:
		return l.tick(ev)
	case ClawAxisChanged:
		return l.claw(ev)
	case DistanceChanged:
		return l.distance(ev)
	case BypassToggled:
		l.bypass = !l.bypass
		return nil
	case PageSelected:
		l.page = ev.Page
		return []Command{show(ev.Page)}
	case RemoteControl:
		return l.setRemote(ev.Enabled)
	}
	return nil
}

func (l *Loop) tick(t Tick) []Command {
	var out []Command
	if l.Clamping() && !t.At.Before(l.clampUntil) {
		l.clampUntil = time.Time{}
		out = append(out, stop(Claw))
	}
	if !l.remote {
		return out
	}

	left := t.A + t.B
	right := t.A - t.B
	if abs(left) < l.lim.Deadband && abs(right) < l.lim.Deadband {
		if l.needsStop {
			out = append(out, stop(LeftDrive), stop(RightDrive))
			l.needsStop = false
		}
		return out
	}
	l.needsStop = true
	return append(out,
		spin(LeftDrive, Forward, left),
		spin(RightDrive, Forward, right),
	)
}

func (l *Loop) claw(c ClawAxisChanged) []Command {
	if l.Clamping() {
		return nil
	}
	switch {
	case c.Position < l.lim.ClawMin:
		l.clampUntil = c.At.Add(l.lim.ClampHold)
		return []Command{spin(Claw, Reverse, l.lim.ClampVelocity)}
	case c.Position > l.lim.ClawMax:
		l.clampUntil = c.At.Add(l.lim.ClampHold)
		return []Command{spin(Claw, Forward, l.lim.ClampVelocity)}
	}
	l.page = screen.PageClaw
	return []Command{
		spin(Claw, Forward, c.Value),
		show(screen.PageClaw),
	}
}

func (l *Loop) distance(d DistanceChanged) []Command {
	if d.Distance >= l.lim.AutoGrabDistance || l.bypass {
		return nil
	}
	l.page = screen.PageVisual
	return []Command{
		{Kind: AutoGrab},
		show(screen.PageVisual),
	}
}

func (l *Loop) setRemote(enabled bool) []Command {
	if enabled == l.remote {
		return nil
	}
	l.remote = enabled
	if enabled {
		return nil
	}
	if !l.needsStop {
		return nil
	}
	l.needsStop = false
	return []Command{stop(LeftDrive), stop(RightDrive)}
}
