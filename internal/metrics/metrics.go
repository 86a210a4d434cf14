// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics collects Prometheus metrics of authentication and
// authorization decisions and exposes them for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the auth counters.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// MetricsCollector is what the HTTP layer reports to.
type MetricsCollector interface {
	RecordLogin(result string)
	RecordSignup(result string)
	RecordPasswordChange(result string)
	// RecordSession records the outcome of a session validation; reason is
	// empty on success.
	RecordSession(reason string)
	RecordAuthorizationDenied(guard string)
	RecordRateLimited(route string)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector is the Prometheus implementation of MetricsCollector.
type Collector struct {
	logins          *prometheus.CounterVec
	signups         *prometheus.CounterVec
	passwordChanges *prometheus.CounterVec
	sessions        *prometheus.CounterVec
	denied          *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics in reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nokan_auth_login_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nokan_auth_signup_total",
			Help: "Bootstrap signup attempts by result.",
		}, []string{"result"}),
		passwordChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nokan_auth_password_change_total",
			Help: "Password changes by result.",
		}, []string{"result"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nokan_session_validation_total",
			Help: "Session validations by outcome.",
		}, []string{"outcome"}),
		denied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nokan_authorization_denied_total",
			Help: "Requests rejected by a permission or role guard.",
		}, []string{"guard"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nokan_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter.",
		}, []string{"route"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nokan_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nokan_http_request_duration_seconds",
			Help:    "Latency of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.logins,
		c.signups,
		c.passwordChanges,
		c.sessions,
		c.denied,
		c.rateLimited,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

func (c *Collector) RecordSignup(result string) {
	c.signups.WithLabelValues(result).Inc()
}

func (c *Collector) RecordPasswordChange(result string) {
	c.passwordChanges.WithLabelValues(result).Inc()
}

func (c *Collector) RecordSession(reason string) {
	if reason == "" {
		reason = "valid"
	}
	c.sessions.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordAuthorizationDenied(guard string) {
	c.denied.WithLabelValues(guard).Inc()
}

func (c *Collector) RecordRateLimited(route string) {
	c.rateLimited.WithLabelValues(route).Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler returns the scrape handler of gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordLogin(string)                 {}
func (Nop) RecordSignup(string)                {}
func (Nop) RecordPasswordChange(string)        {}
func (Nop) RecordSession(string)               {}
func (Nop) RecordAuthorizationDenied(string)   {}
func (Nop) RecordRateLimited(string)           {}
func (Nop) RecordHTTPStatus(int)               {}
func (Nop) RecordRequestLatency(time.Duration) {}
