package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// RegisterEntityGauges exposes entity counts as gauges evaluated at scrape
// time. Call once during bootstrap.
func RegisterEntityGauges(db *gorm.DB) {
	count := func(model interface{}, conds ...interface{}) func() float64 {
		return func() float64 {
			var n int64
			q := db.Model(model)
			if len(conds) > 0 {
				q = q.Where(conds[0], conds[1:]...)
			}
			q.Count(&n)
			return float64(n)
		}
	}

	prometheus.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "taskflow_projects_total",
			Help: "Total number of projects",
		}, count(&models.Project{})),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "taskflow_tasks_total",
			Help: "Total number of tasks",
		}, count(&models.Task{})),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "taskflow_tasks_open",
			Help: "Number of tasks not yet done",
		}, count(&models.Task{}, "status != ?", models.TaskStatusDone)),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "taskflow_milestones_total",
			Help: "Total number of milestones",
		}, count(&models.Milestone{})),
	)
}

// Metrics serves the Prometheus scrape endpoint.
func Metrics() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
