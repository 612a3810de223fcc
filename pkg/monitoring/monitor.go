package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 15, 30, 60, 120},
		},
		[]string{"method", "endpoint"},
	)

	// WorkflowRuns 工作流调用结果：success / error / interrupted
	WorkflowRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_runs_total",
			Help: "Total number of workflow runs by workflow and outcome",
		},
		[]string{"workflow", "outcome"},
	)

	WorkflowDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workflow_run_duration_seconds",
			Help:    "Duration of workflow runs",
			Buckets: []float64{1, 5, 10, 20, 40, 60, 120},
		},
		[]string{"workflow"},
	)

	// SyncedQuestions 同步到用户题目表的结果：inserted / duplicate / failed
	SyncedQuestions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "question_sync_rows_total",
			Help: "Mirror rows processed by question type and result",
		},
		[]string{"type", "result"},
	)

	GradedAnswers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graded_answers_total",
			Help: "Graded answers by question type and correctness",
		},
		[]string{"type", "correct"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(WorkflowRuns)
	prometheus.MustRegister(WorkflowDuration)
	prometheus.MustRegister(SyncedQuestions)
	prometheus.MustRegister(GradedAnswers)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func ObserveWorkflow(workflow, outcome string, started time.Time) {
	WorkflowRuns.WithLabelValues(workflow, outcome).Inc()
	WorkflowDuration.WithLabelValues(workflow).Observe(time.Since(started).Seconds())
}

func ObserveSync(questionType string, inserted, duplicates, failed int) {
	SyncedQuestions.WithLabelValues(questionType, "inserted").Add(float64(inserted))
	SyncedQuestions.WithLabelValues(questionType, "duplicate").Add(float64(duplicates))
	SyncedQuestions.WithLabelValues(questionType, "failed").Add(float64(failed))
}

func ObserveGrade(questionType string, correct bool) {
	GradedAnswers.WithLabelValues(questionType, strconv.FormatBool(correct)).Inc()
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
