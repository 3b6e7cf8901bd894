package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	Registry = prometheus.NewRegistry()

	requestTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "request_flow",
			Subsystem: "request",
			Name:      "transitions_total",
			Help:      "Количество переходов заявок по действию и результату.",
		},
		[]string{"action", "result"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "request_flow",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Количество отправленных уведомлений по каналу и результату.",
		},
		[]string{"channel", "result"},
	)

	requestsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "request_flow",
			Subsystem: "request",
			Name:      "by_status",
			Help:      "Количество заявок в каждом статусе.",
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestTransitions,
		notifications,
		requestsByStatus,
	)
}

func resultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

// RecordTransition учитывает попытку действия над заявкой
func RecordTransition(action string, err error) {
	requestTransitions.WithLabelValues(action, resultLabel(err)).Inc()
}

// RecordNotification учитывает отправку уведомления в канал smtp/nats/ws
func RecordNotification(channel string, err error) {
	notifications.WithLabelValues(channel, resultLabel(err)).Inc()
}

// SetRequestsByStatus заменяет значения по статусам целиком, пропавшие статусы обнуляются
func SetRequestsByStatus(counts map[string]int64) {
	requestsByStatus.Reset()
	for status, count := range counts {
		requestsByStatus.WithLabelValues(status).Set(float64(count))
	}
}

// Handler отдаёт метрики в формате prometheus
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
