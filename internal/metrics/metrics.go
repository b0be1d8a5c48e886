package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

var (
	WsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "linkup_ws_connections",
		Help: "Current number of active websocket connections",
	})
	MessagesSentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkup_messages_sent_total",
		Help: "Total number of direct messages persisted",
	})
	PushesDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkup_pushes_dropped_total",
		Help: "Total number of real-time pushes dropped because the receiver was offline",
	})
)

func init() {
	prometheus.MustRegister(WsConnections, MessagesSentTotal, PushesDroppedTotal)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
