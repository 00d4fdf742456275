package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramUpdatesReceivedTotal,
		telegramCommandsReceivedTotal,
		telegramCallbacksReceivedTotal,
		telegramHandlerErrorsTotal,
	)
}

var (
	telegramUpdatesReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_updates_received_total",
			Help: "Incoming updates by kind (message, callback, other).",
		},
		[]string{"kind"},
	)

	telegramCommandsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_received_total",
			Help: "Counts incoming bot commands.",
		},
		[]string{"command"},
	)

	telegramCallbacksReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_callbacks_received_total",
			Help: "Counts callback button presses by route (unknown when no route matched).",
		},
		[]string{"route"},
	)

	telegramHandlerErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_handler_errors_total",
			Help: "Updates whose handling returned an error or panicked.",
		},
	)
)

func IncUpdate(kind string) {
	telegramUpdatesReceivedTotal.WithLabelValues(norm(kind)).Inc()
}

func IncTelegramCommand(command string) {
	telegramCommandsReceivedTotal.WithLabelValues(norm(command)).Inc()
}

func IncCallback(route string) {
	telegramCallbacksReceivedTotal.WithLabelValues(norm(route)).Inc()
}

func IncHandlerError() {
	telegramHandlerErrorsTotal.Inc()
}
