package main

import (
	"log"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"

	"github.com/jobboardhq/jobs-api/internal/authoriser"
	"github.com/jobboardhq/jobs-api/internal/company"
	"github.com/jobboardhq/jobs-api/internal/config"
	"github.com/jobboardhq/jobs-api/internal/database"
	"github.com/jobboardhq/jobs-api/internal/email"
	"github.com/jobboardhq/jobs-api/internal/handler"
	"github.com/jobboardhq/jobs-api/internal/job"
	"github.com/jobboardhq/jobs-api/internal/server"
	"github.com/jobboardhq/jobs-api/internal/user"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	conn, err := database.GetDbConn(
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)
	if err != nil {
		log.Fatalf("unable to connect to postgres: %v", err)
	}
	defer database.CloseDbConn(conn)
	emailClient, err := email.NewClient(cfg.EmailAPIKey, cfg.SupportEmail, cfg.NoReplyEmail, cfg.SiteName)
	if err != nil {
		log.Fatalf("unable to initialise email client: %v", err)
	}
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)

	jobRepo := job.NewRepository(conn)
	companyRepo := company.NewRepository(conn)
	userRepo := user.NewRepository(conn)
	auth := authoriser.NewAuthoriser(userRepo)

	svr := server.NewServer(
		cfg,
		conn,
		mux.NewRouter(),
		emailClient,
		sessionStore,
	)

	svr.RegisterRoute("/health", handler.HealthCheckHandler(svr), []string{"GET"})
	svr.RegisterRoute("/robots.txt", handler.RobotsTxtHandler(svr), []string{"GET"})

	// sign on
	svr.RegisterRoute("/auth/session", handler.PostAuthSessionHandler(svr, auth), []string{"POST"})

	// post a job
	svr.RegisterRoute("/jobs", handler.CreateJobHandler(svr, jobRepo), []string{"POST"})

	// search jobs
	svr.RegisterRoute("/jobs", handler.SearchJobsHandler(svr, jobRepo), []string{"GET"})

	// view a single job
	svr.RegisterRoute("/jobs/{id:[0-9]+}", handler.GetJobHandler(svr, jobRepo, companyRepo), []string{"GET"})

	// edit a job
	svr.RegisterRoute("/jobs/{id:[0-9]+}", handler.UpdateJobHandler(svr, jobRepo), []string{"PATCH"})

	// remove a job
	svr.RegisterRoute("/jobs/{id:[0-9]+}", handler.DeleteJobHandler(svr, jobRepo), []string{"DELETE"})

	// apply to a job
	svr.RegisterRoute("/jobs/{id:[0-9]+}/apply", handler.ApplyToJobHandler(svr, userRepo), []string{"POST"})

	// list own applications
	svr.RegisterRoute("/applications", handler.ListApplicationsHandler(svr, userRepo), []string{"GET"})

	// salary distribution stats
	svr.RegisterRoute("/stats/salary", handler.SalaryStatsHandler(svr, jobRepo), []string{"GET"})

	log.Fatal(svr.Run())
}
