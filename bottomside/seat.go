package main

import (
	"errors"
	"sync"
)

//ErrControllerInUse is returned when a second controller tries to connect
var ErrControllerInUse = errors.New("another controller is already connected")

//seat admits one controller connection at a time
type seat struct {
	lck    sync.Mutex
	holder string
}

func (s *seat) take(remote string) error {
	s.lck.Lock()
	defer s.lck.Unlock()
	if s.holder != "" {
		return ErrControllerInUse
	}
	s.holder = remote
	return nil
}

func (s *seat) release() {
	s.lck.Lock()
	defer s.lck.Unlock()
	s.holder = ""
}

func (s *seat) current() string {
	s.lck.Lock()
	defer s.lck.Unlock()
	return s.holder
}
