package main

import (
	"github.com/AscendTech4H/iqclaw/control"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	ticks        prometheus.Counter
	commands     *prometheus.CounterVec
	clamps       prometheus.Counter
	autoGrabs    prometheus.Counter
	brainErrors  prometheus.Counter
	battery      prometheus.Gauge
	clawPosition prometheus.Gauge
	distance     prometheus.Gauge
	remote       prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "iqclaw_loop_ticks_total",
			Help: "Control loop polls completed.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "iqclaw_commands_total",
			Help: "Commands produced by the control loop.",
		}, []string{"kind", "actuator"}),
		clamps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "iqclaw_claw_clamps_total",
			Help: "Claw clamp maneuvers started at a travel limit.",
		}),
		autoGrabs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "iqclaw_autograb_triggers_total",
			Help: "Objects detected inside the auto-grab distance.",
		}),
		brainErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "iqclaw_brain_errors_total",
			Help: "Failed exchanges with the brain.",
		}),
		battery: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iqclaw_battery_percent",
			Help: "Brain battery capacity.",
		}),
		clawPosition: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iqclaw_claw_position_degrees",
			Help: "Last reported claw position.",
		}),
		distance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iqclaw_sonar_distance_mm",
			Help: "Last reported sonar distance.",
		}),
		remote: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "iqclaw_remote_control_enabled",
			Help: "1 while a controller is driving the robot.",
		}),
	}
	reg.MustRegister(m.ticks, m.commands, m.clamps, m.autoGrabs, m.brainErrors,
		m.battery, m.clawPosition, m.distance, m.remote)
	return m
}

func (m *metrics) command(c control.Command) {
	actuator := ""
	switch c.Kind {
	case control.Spin, control.Stop:
		actuator = c.Actuator.String()
	case control.AutoGrab:
		m.autoGrabs.Inc()
	}
	m.commands.WithLabelValues(c.Kind.String(), actuator).Inc()
}

func (m *metrics) status(st BrainStatus) {
	m.battery.Set(float64(st.Battery))
	m.clawPosition.Set(st.ClawPosition)
	m.distance.Set(float64(st.Distance))
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
