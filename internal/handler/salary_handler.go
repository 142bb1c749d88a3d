package handler

import (
	"net/http"

	"github.com/aclements/go-moremath/stats"

	"github.com/jobboardhq/jobs-api/internal/server"
)

// SalaryStatsHandler handles GET /stats/salary, sample statistics over
// every job with a declared salary.
func SalaryStatsHandler(svr server.Server, jobRepo JobRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		samples, err := jobRepo.SalarySamples(r.Context())
		if err != nil {
			svr.Error(w, err)
			return
		}
		if len(samples) == 0 {
			svr.JSON(w, http.StatusOK, map[string]interface{}{"count": 0})
			return
		}
		sample := stats.Sample{Xs: samples}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"count":  len(samples),
			"mean":   sample.Mean(),
			"stdDev": sample.StdDev(),
			"p10":    sample.Quantile(0.1),
			"p50":    sample.Quantile(0.5),
			"p90":    sample.Quantile(0.9),
		})
	}
}
