package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/attendly-hq/attendance-engine-go/internal/config"
	appHTTP "github.com/attendly-hq/attendance-engine-go/internal/handler/http"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/cron"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/database"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/storage"
	"github.com/attendly-hq/attendance-engine-go/internal/repository/postgresql"
	attendanceService "github.com/attendly-hq/attendance-engine-go/internal/service/attendance"
	ingestService "github.com/attendly-hq/attendance-engine-go/internal/service/ingest"
	"github.com/attendly-hq/attendance-engine-go/internal/service/overlay"
	pipelineService "github.com/attendly-hq/attendance-engine-go/internal/service/pipeline"
	reportService "github.com/attendly-hq/attendance-engine-go/internal/service/report"
	summaryService "github.com/attendly-hq/attendance-engine-go/internal/service/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	baseRepo := postgresql.NewBaseRepository(db)
	resultRepo := postgresql.NewResultRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	tripRepo := postgresql.NewTripRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)

	uploadStorage, err := storage.NewLocalStorage(cfg.App.UploadDir)
	if err != nil {
		log.Fatal("Failed to initialize upload storage:", err)
	}
	reportStorage, err := storage.NewLocalStorage(cfg.App.OutputDir)
	if err != nil {
		log.Fatal("Failed to initialize report storage:", err)
	}

	policy, err := attendanceService.NewPolicy(
		cfg.Policy.MorningLimit,
		cfg.Policy.EveningLimit,
		cfg.Policy.HalfDayAbsent,
		cfg.Policy.FullDayAbsent,
		cfg.Policy.EarlyLeaveThreshold,
	)
	if err != nil {
		log.Fatal("Invalid classification policy:", err)
	}

	ingestSvc := ingestService.NewService(
		cfg.App.UploadDir,
		cfg.Ingest.LeaveNameSuffix,
		baseRepo, tripRepo, leaveRepo, overtimeRepo,
	)
	classifySvc := attendanceService.NewService(policy, baseRepo, resultRepo)
	tripOverlay := overlay.NewTripOverlay(db, resultRepo, tripRepo)
	leaveOverlay := overlay.NewLeaveOverlay(db, resultRepo, leaveRepo)
	overtimeOverlay := overlay.NewOvertimeOverlay(db, resultRepo, overtimeRepo)
	summarySvc := summaryService.NewService(resultRepo)
	reportSvc := reportService.NewService(cfg.App.OutputDir)

	pipelineSvc := pipelineService.NewService(
		calendarRepo,
		ingestSvc, classifySvc,
		tripOverlay, leaveOverlay, overtimeOverlay,
		summarySvc, reportSvc,
	)

	pipelineHandler := appHTTP.NewPipelineHandler(pipelineSvc)
	reportHandler := appHTTP.NewReportHandler(reportStorage)
	uploadHandler := appHTTP.NewUploadHandler(uploadStorage)
	calendarHandler := appHTTP.NewCalendarHandler(calendarRepo)

	router := appHTTP.NewRouter(
		pipelineHandler,
		reportHandler,
		uploadHandler,
		calendarHandler,
	)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewPipelineJobs(pipelineSvc, cfg.Cron.RunHourUTC).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
