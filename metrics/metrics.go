package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "bookings_submitted_total",
		Help:      "Total number of booking submissions sent to the booking service",
	})

	BookingsConfirmed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "bookings_confirmed_total",
		Help:      "Total number of confirmed bookings, partitioned by whether payment was required",
	}, []string{"kind"})

	BookingsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "bookings_failed_total",
		Help:      "Total number of booking submissions rejected by the booking service",
	})

	PaymentOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "payment_outcomes_total",
		Help:      "Terminal payment outcomes, partitioned by outcome",
	}, []string{"outcome"})

	StatusChecksIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "payment_status_checks_total",
		Help:      "Total number of payment status checks issued by the poller",
	})

	PollFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "poll_fallbacks_total",
		Help:      "Times automatic polling was suspended after repeated check failures",
	})

	MessagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "messages_processed_total",
		Help:      "Total number of processed messages",
	}, []string{"topic", "handler"})

	MessagesProcessingFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "messages_processing_failed_total",
		Help:      "Total number of messages that failed processing",
	}, []string{"topic", "handler"})

	MessagesProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "checkout",
		Name:      "messages_processing_duration_seconds",
		Help:      "Time spent processing a message",
	}, []string{"topic", "handler"})
)
