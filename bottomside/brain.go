package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/AscendTech4H/iqclaw/config"
	"github.com/tarm/serial"
)

//Brain is the robot's microcontroller, linked over serial
type Brain struct {
	bus       io.ReadWriteCloser
	serout    *bufio.Reader
	serin     *bufio.Writer
	spincache map[uint8]int //velocities the brain has received
	pending   map[uint8]int //velocities written but not yet flushed
	resync    bool          //a status reply was cut short
}

//ConnectBrain opens the serial port and waits for the brain to come up
func ConnectBrain(cfg config.SerialConfig) (*Brain, error) {
	bus, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	b, err := newBrain(bus)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return b, nil
}

func newBrain(bus io.ReadWriteCloser) (*Brain, error) {
	b := &Brain{
		bus:       bus,
		serout:    bufio.NewReader(bus),
		serin:     bufio.NewWriter(bus),
		spincache: make(map[uint8]int),
		pending:   make(map[uint8]int),
	}
	//brain prints "init" on boot and "start" once its devices are configured
	for _, want := range []string{"init", "start"} {
		ln, err := b.serout.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("waiting for %q: %w", want, err)
		}
		if ln = strings.TrimRight(ln, "\r\n"); ln != want {
			return nil, fmt.Errorf("expected %q but got %q", want, ln)
		}
	}
	return b, nil
}

//BrainStatus is one status record from the brain
type BrainStatus struct {
	ClawPosition float64 //degrees
	ClawVelocity int     //percent
	ClawSpinning bool
	ObjectFound  bool
	ButtonUp     bool
	ButtonDown   bool
	Distance     int //mm
	Battery      int //percent
}

const (
	flagClawSpinning = 1 << iota
	flagObjectFound
	flagButtonUp
	flagButtonDown
)

//Status requests a status record
func (b *Brain) Status() (BrainStatus, error) {
	if b.resync {
		b.drain()
	}
	if _, err := fmt.Fprintln(b.serin, "3"); err != nil {
		return BrainStatus{}, err
	}
	if err := b.Flush(); err != nil {
		return BrainStatus{}, err
	}
	var rec struct {
		ClawPos  int32 //centidegrees
		ClawVel  int8
		Flags    uint8
		Distance uint16
		Battery  uint8
	}
	if err := binary.Read(b.serout, binary.BigEndian, &rec); err != nil {
		//the rest of this reply may still arrive and would misalign the next one
		b.resync = true
		return BrainStatus{}, fmt.Errorf("read status: %w", err)
	}
	return BrainStatus{
		ClawPosition: float64(rec.ClawPos) / 100,
		ClawVelocity: int(rec.ClawVel),
		ClawSpinning: rec.Flags&flagClawSpinning != 0,
		ObjectFound:  rec.Flags&flagObjectFound != 0,
		ButtonUp:     rec.Flags&flagButtonUp != 0,
		ButtonDown:   rec.Flags&flagButtonDown != 0,
		Distance:     int(rec.Distance),
		Battery:      int(rec.Battery),
	}, nil
}

//maxDrainReads bounds drain on a brain that never goes quiet
const maxDrainReads = 64

//drain discards buffered input and whatever the brain sends until a read comes back empty
func (b *Brain) drain() {
	buf := make([]byte, 64)
	for i := 0; i < maxDrainReads; i++ {
		n, err := b.bus.Read(buf)
		if n == 0 || err != nil {
			break
		}
	}
	b.serout.Reset(b.bus)
	b.resync = false
}

//Spin sets a motor spinning at pct percent of full speed, negative for
//reverse. pct is clamped to [-100, 100]. Nothing is sent when the port is
//already spinning at pct.
func (b *Brain) Spin(port uint8, pct int) error {
	if pct > 100 {
		pct = 100
	} else if pct < -100 {
		pct = -100
	}
	old, known := b.pending[port]
	if !known {
		old, known = b.spincache[port]
	}
	if known && old == pct {
		return nil
	}
	if _, err := fmt.Fprintf(b.serin, "1 %d %d\n", port, pct); err != nil {
		return err
	}
	b.pending[port] = pct
	return nil
}

//Stop stops a motor
func (b *Brain) Stop(port uint8) error {
	delete(b.spincache, port)
	delete(b.pending, port)
	_, err := fmt.Fprintf(b.serin, "2 %d\n", port)
	return err
}

//Flush sends buffered commands. Spin velocities are only cached once the flush succeeds.
func (b *Brain) Flush() error {
	err := b.serin.Flush()
	for port, pct := range b.pending {
		if err == nil {
			b.spincache[port] = pct
		}
		delete(b.pending, port)
	}
	return err
}

//Close closes the serial port
func (b *Brain) Close() error {
	return b.bus.Close()
}
