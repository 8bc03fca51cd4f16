package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/AscendTech4H/iqclaw/config"
	"github.com/AscendTech4H/iqclaw/control"
	"github.com/AscendTech4H/iqclaw/screen"
)

//RobotInfo is the published robot state served on /info.json
type RobotInfo struct {
	Serial        string             `json:"serial"`
	Ports         config.PortsConfig `json:"ports"`
	Controller    string             `json:"controller,omitempty"`
	RemoteEnabled bool               `json:"remote_enabled"`
	Bypass        bool               `json:"bypass"`
	Clamping      bool               `json:"clamping"`
	Page          string             `json:"page"`
	Status        BrainStatus        `json:"status"`
	UpdateCount   uint64             `json:"update_count"`
}

//robot owns the control loop and the brain; run is its only writer
type robot struct {
	cfg     *config.Config
	dev     device
	loop    *control.Loop
	disp    *dispatcher
	out     *applier
	ctl     controllerState
	seat    seat
	metrics *metrics

	mu     sync.Mutex
	info   RobotInfo
	screen [4]string
}

func newRobot(cfg *config.Config, dev device, m *metrics) *robot {
	r := &robot{
		cfg:     cfg,
		dev:     dev,
		loop:    control.NewLoop(cfg.Limits()),
		disp:    newDispatcher(cfg.Control.ControllerTimeout),
		metrics: m,
		out: &applier{
			dev:     dev,
			ports:   cfg.Ports,
			title:   cfg.Screen.Title,
			metrics: m,
		},
	}
	r.out.render(screen.PageClaw, BrainStatus{})
	r.publish(BrainStatus{})
	return r
}

//run polls the brain every control period until ctx is done, then stops all motors
func (r *robot) run(ctx context.Context) {
	tick := time.NewTicker(r.cfg.Control.Period)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			r.halt()
			return
		case now := <-tick.C:
			r.step(now)
		}
	}
}

func (r *robot) step(now time.Time) {
	st, err := r.dev.Status()
	if err != nil {
		r.metrics.brainErrors.Inc()
		log.Printf("Error reading brain status: %q", err.Error())
		return
	}
	r.metrics.status(st)

	frame, seen := r.ctl.get()
	for _, ev := range r.disp.events(now, frame, seen, st) {
		clamping := r.loop.Clamping()
		r.out.apply(r.loop.Handle(ev), st)
		if !clamping && r.loop.Clamping() {
			r.metrics.clamps.Inc()
			log.Printf("Claw at %.1f degrees, clamping", st.ClawPosition)
		}
	}
	if err := r.dev.Flush(); err != nil {
		r.metrics.brainErrors.Inc()
		log.Printf("Error flushing brain commands: %q", err.Error())
	}
	r.metrics.ticks.Inc()
	r.metrics.remote.Set(b2f(r.loop.RemoteEnabled()))
	r.publish(st)
}

func (r *robot) halt() {
	p := r.cfg.Ports
	for _, port := range []uint8{p.LeftDrive, p.RightDrive, p.Claw} {
		if err := r.dev.Stop(port); err != nil {
			log.Printf("Error stopping port %d: %q", port, err.Error())
		}
	}
	if err := r.dev.Flush(); err != nil {
		log.Printf("Error flushing brain commands: %q", err.Error())
	}
}

func (r *robot) publish(st BrainStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.info = RobotInfo{
		Serial:        r.cfg.Serial.Device,
		Ports:         r.cfg.Ports,
		Controller:    r.seat.current(),
		RemoteEnabled: r.loop.RemoteEnabled(),
		Bypass:        r.loop.Bypass(),
		Clamping:      r.loop.Clamping(),
		Page:          r.loop.Page().String(),
		Status:        st,
		UpdateCount:   r.info.UpdateCount + 1,
	}
	r.screen = r.out.screen
}

func (r *robot) snapshot() (RobotInfo, [4]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info, r.screen
}
