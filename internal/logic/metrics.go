package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordclock_ticks_total",
		Help: "count of core loop iterations",
	})

	renders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordclock_renders_total",
		Help: "count of face renders requested by the core",
	})

	buttonEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordclock_button_events_total",
		Help: "count of debounced button advance events, by button",
	}, []string{"button"})

	rtcOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordclock_rtc_ops_total",
		Help: "count of successful RTC transfers, by operation",
	}, []string{"op"})

	rtcErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordclock_rtc_errors_total",
		Help: "count of failed RTC transfers",
	})
)
