package main

import (
	"fmt"
	"log"

	"github.com/AscendTech4H/iqclaw/config"
	"github.com/AscendTech4H/iqclaw/control"
	"github.com/AscendTech4H/iqclaw/screen"
)

//device is the part of the brain the control loop drives
type device interface {
	Spin(port uint8, pct int) error
	Stop(port uint8) error
	Status() (BrainStatus, error)
	Flush() error
}

//applier carries control commands out on the brain
type applier struct {
	dev     device
	ports   config.PortsConfig
	title   string
	metrics *metrics
	screen  [4]string
}

func (a *applier) port(act control.Actuator) (uint8, bool) {
	switch act {
	case control.LeftDrive:
		return a.ports.LeftDrive, a.ports.LeftReversed
	case control.RightDrive:
		return a.ports.RightDrive, a.ports.RightReversed
	default:
		return a.ports.Claw, a.ports.ClawReversed
	}
}

func (a *applier) render(page screen.Page, st BrainStatus) {
	a.screen = screen.Render(a.title, page, screen.Readings{
		Battery:      st.Battery,
		ClawSpinning: st.ClawSpinning,
		ClawVelocity: st.ClawVelocity,
		ObjectFound:  st.ObjectFound,
		Distance:     st.Distance,
	})
}

//apply sends cmds to the brain. Device errors are logged and the remaining
//commands still go out.
func (a *applier) apply(cmds []control.Command, st BrainStatus) {
	for _, c := range cmds {
		a.metrics.command(c)
		if err := a.one(c, st); err != nil {
			a.metrics.brainErrors.Inc()
			log.Printf("Error applying %s %s: %q", c.Kind, c.Actuator, err.Error())
		}
	}
}

func (a *applier) one(c control.Command, st BrainStatus) error {
	switch c.Kind {
	case control.Spin:
		port, rev := a.port(c.Actuator)
		pct := c.Signed()
		if rev {
			pct = -pct
		}
		return a.dev.Spin(port, pct)
	case control.Stop:
		port, _ := a.port(c.Actuator)
		return a.dev.Stop(port)
	case control.ShowScreen:
		a.render(c.Page, st)
	case control.AutoGrab:
		log.Printf("Auto-grab: object at %dmm", st.Distance)
	default:
		return fmt.Errorf("unknown command kind %d", c.Kind)
	}
	return nil
}
