package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CheckoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "digistore",
		Name:      "checkout_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})

	WebhookTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "digistore",
		Name:      "payment_notification_total",
		Help:      "Payment notifications by outcome.",
	}, []string{"outcome"})

	WebhookSignatureRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "digistore",
		Name:      "payment_notification_signature_rejected_total",
		Help:      "Payment notifications refused because the processor signature did not verify.",
	})

	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "digistore",
		Name:      "order_status_transition_total",
		Help:      "Applied order status transitions.",
	}, []string{"from", "to"})

	GatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "digistore",
		Name:      "gateway_request_duration_seconds",
		Help:      "Payment processor call latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "outcome"})

	SweepExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "digistore",
		Name:      "sweep_expired_orders_total",
		Help:      "Orders moved to EXPIRED by the sweeper.",
	})

	OutboxPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "digistore",
		Name:      "outbox_events_total",
		Help:      "Outbox relay results.",
	}, []string{"result"})

	OutboxBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "digistore",
		Name:      "outbox_pending_events",
		Help:      "Outbox rows still waiting for the relay.",
	})

	ConsumerProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "digistore",
		Name:      "consumer_events_total",
		Help:      "Kafka events handled by the consumer, by type and result.",
	}, []string{"event_type", "result"})
)

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
