// Package metrics 提供互助会服务的 Prometheus 监控指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "axiom_susu"

// 生命周期指标
var (
	// HubJoinsTotal 社区加入总数
	HubJoinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hub_joins_total",
			Help:      "社区加入总数",
		},
	)

	// GroupJoinsTotal 小组加入总数
	GroupJoinsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "group_joins_total",
			Help:      "小组加入总数",
		},
		[]string{"result"}, // result: joined/full/duplicate
	)

	// GroupsCreatedTotal 小组创建总数
	GroupsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groups_created_total",
			Help:      "小组创建总数",
		},
	)

	// GraduationsTotal 毕业操作总数
	GraduationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graduations_total",
			Help:      "毕业操作总数",
		},
		[]string{"result", "mode"}, // result: success/rejected/conflict
	)
)

// 模式分类指标
var (
	// ModeDetectionsTotal 模式分类总数
	ModeDetectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mode_detections_total",
			Help:      "模式分类总数",
		},
		[]string{"mode"}, // mode: community/capital
	)

	// RiskScoreDistribution 风险评分分布
	RiskScoreDistribution = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "risk_score",
			Help:      "模式分类风险评分分布",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 75, 80, 90, 100},
		},
	)
)

// 章程指标
var (
	// ChartersGeneratedTotal 章程生成总数
	ChartersGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charters_generated_total",
			Help:      "章程生成总数",
		},
		[]string{"mode"},
	)

	// CharterVersionRetriesTotal 章程版本号冲突重试总数
	CharterVersionRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charter_version_retries_total",
			Help:      "章程版本号冲突重试总数",
		},
	)
)

// HTTP 指标
var (
	// HTTPRequestsTotal HTTP 请求总数
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP 请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP 请求耗时(秒)",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path"},
	)
)

// Kafka 指标
var (
	// EventsPublishedTotal 事件发布总数
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "生命周期事件发布总数",
		},
		[]string{"event_type", "result"},
	)
)
