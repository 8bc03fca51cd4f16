package main

import (
	"sync"
	"time"
)

//ControllerFrame is one update from the driver's controller
type ControllerFrame struct {
	A      int  `json:"a"` //drive forward/back
	B      int  `json:"b"` //drive turn
	C      int  `json:"c"` //unused
	D      int  `json:"d"` //claw
	Bypass bool `json:"bypass"`
}

func clampAxis(v int) int {
	if v > 100 {
		return 100
	}
	if v < -100 {
		return -100
	}
	return v
}

func (f ControllerFrame) bounded() ControllerFrame {
	f.A = clampAxis(f.A)
	f.B = clampAxis(f.B)
	f.C = clampAxis(f.C)
	f.D = clampAxis(f.D)
	return f
}

//controllerState is the latest frame received from the controller socket
type controllerState struct {
	sync.Mutex
	frame ControllerFrame
	seen  time.Time //zero until the first frame arrives
}

func (s *controllerState) set(f ControllerFrame, now time.Time) {
	s.Lock()
	defer s.Unlock()
	s.frame = f.bounded()
	s.seen = now
}

func (s *controllerState) get() (ControllerFrame, time.Time) {
	s.Lock()
	defer s.Unlock()
	return s.frame, s.seen
}
