package control

import "time"

//Limits are the thresholds the control loop enforces
type Limits struct {
	Deadband         int           //drive stops while both sides are below this magnitude
	ClawMin, ClawMax float64       //claw travel limits in degrees
	ClampVelocity    int           //percent used to back the claw off a limit
	ClampHold        time.Duration //how long a clamp maneuver runs before the claw stops
	AutoGrabDistance int           //mm, objects closer than this trigger auto-grab
}

//DefaultLimits returns the limits tuned for the claw bot
func DefaultLimits() Limits {
	return Limits{
		Deadband:         5,
		ClawMin:          -230,
		ClawMax:          1,
		ClampVelocity:    20,
		ClampHold:        time.Second,
		AutoGrabDistance: 110,
	}
}

//MaxVelocity is the largest velocity percentage an actuator accepts
const MaxVelocity = 100

func bound(v int) int {
	if v > MaxVelocity {
		return MaxVelocity
	}
	if v < -MaxVelocity {
		return -MaxVelocity
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
