package main

import (
	"time"

	"github.com/AscendTech4H/iqclaw/control"
	"github.com/AscendTech4H/iqclaw/screen"
)

//dispatcher turns polled snapshots into control events. It compares each
//snapshot with the previous one so that only changes produce claw, distance
//and button events.
type dispatcher struct {
	timeout time.Duration
	online  bool
	prevCtl ControllerFrame
	prevSt  BrainStatus
}

func newDispatcher(timeout time.Duration) *dispatcher {
	//the loop starts with remote control on, so the first poll without a controller turns it off
	return &dispatcher{timeout: timeout, online: true}
}

func (d *dispatcher) events(now time.Time, frame ControllerFrame, seen time.Time, st BrainStatus) []control.InputEvent {
	var evs []control.InputEvent

	online := !seen.IsZero() && now.Sub(seen) <= d.timeout
	if online != d.online {
		d.online = online
		evs = append(evs, control.RemoteControl{Enabled: online})
	}
	if !online {
		frame = ControllerFrame{}
	}

	evs = append(evs, control.Tick{At: now, A: frame.A, B: frame.B})

	if frame.D != d.prevCtl.D {
		evs = append(evs, control.ClawAxisChanged{At: now, Value: frame.D, Position: st.ClawPosition})
	}
	if st.Distance != d.prevSt.Distance || st.ObjectFound != d.prevSt.ObjectFound {
		evs = append(evs, control.DistanceChanged{At: now, Distance: st.Distance, Found: st.ObjectFound})
	}
	if frame.Bypass && !d.prevCtl.Bypass {
		evs = append(evs, control.BypassToggled{})
	}
	if st.ButtonUp && !d.prevSt.ButtonUp {
		evs = append(evs, control.PageSelected{Page: screen.PageClaw})
	}
	if st.ButtonDown && !d.prevSt.ButtonDown {
		evs = append(evs, control.PageSelected{Page: screen.PageVisual})
	}

	d.prevCtl = frame
	d.prevSt = st
	return evs
}
