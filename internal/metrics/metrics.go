package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector собирает prometheus-метрики доменных операций.
type Collector struct {
	hireTransitions   *prometheus.CounterVec
	messagesSent      prometheus.Counter
	reviewsSubmitted  *prometheus.CounterVec
	notificationFails prometheus.Counter
	wsSubscriptions   prometheus.Gauge
}

// NewCollector создает Collector и регистрирует метрики в реестре.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		hireTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cyw_hire_transitions_total",
			Help: "Количество переходов статусов заявок, по целевому статусу",
		}, []string{"to_status"}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cyw_messages_sent_total",
			Help: "Количество отправленных сообщений",
		}),
		reviewsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cyw_reviews_submitted_total",
			Help: "Количество созданных отзывов, по виду (auth/guest/client)",
		}, []string{"kind"}),
		notificationFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cyw_notification_failures_total",
			Help: "Количество проглоченных ошибок отправки уведомлений",
		}),
		wsSubscriptions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cyw_ws_subscriptions",
			Help: "Текущее количество активных подписок на диалоги",
		}),
	}

	reg.MustRegister(
		c.hireTransitions,
		c.messagesSent,
		c.reviewsSubmitted,
		c.notificationFails,
		c.wsSubscriptions,
	)

	return c
}

// NewDefaultCollector регистрирует метрики в глобальном реестре prometheus.
func NewDefaultCollector() *Collector {
	return NewCollector(prometheus.DefaultRegisterer)
}

func (c *Collector) RecordHireTransition(toStatus string) {
	c.hireTransitions.WithLabelValues(toStatus).Inc()
}

func (c *Collector) RecordMessageSent() {
	c.messagesSent.Inc()
}

func (c *Collector) RecordReviewSubmitted(kind string) {
	c.reviewsSubmitted.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordNotificationFailure() {
	c.notificationFails.Inc()
}

func (c *Collector) SubscriptionOpened() {
	c.wsSubscriptions.Inc()
}

func (c *Collector) SubscriptionClosed() {
	c.wsSubscriptions.Dec()
}

// Handler возвращает gin-хендлер эндпоинта /metrics.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
