package handler

import (
	"net/http"

	"github.com/jobboardhq/jobs-api/internal/server"
)

func HealthCheckHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svr.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

func RobotsTxtHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svr.TEXT(w, http.StatusOK, "User-agent: *\nDisallow: /\n")
	}
}
