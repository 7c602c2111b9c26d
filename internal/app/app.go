package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sathaneem/aadhi-academy/internal/app/server"
	"github.com/sathaneem/aadhi-academy/internal/config"
	"github.com/sathaneem/aadhi-academy/internal/delivery/http"
	"github.com/sathaneem/aadhi-academy/internal/service"
	"github.com/sathaneem/aadhi-academy/internal/service/access"
	"github.com/sathaneem/aadhi-academy/internal/service/catalog"
	"github.com/sathaneem/aadhi-academy/internal/service/enrollment"
	"github.com/sathaneem/aadhi-academy/internal/service/progress"
	"github.com/sathaneem/aadhi-academy/internal/storage/elastic"
	"github.com/sathaneem/aadhi-academy/internal/storage/minio_storage"
	"github.com/sathaneem/aadhi-academy/internal/storage/postgres"
	"github.com/sathaneem/aadhi-academy/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewCourseSearchRepository(esClient, cfg.ES.Index)
	if err = searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error creating search index", err)
	}

	minioStorage, err := minio_storage.NewMinioStorage(
		cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL,
		[]string{cfg.Minio.FileBucket},
	)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	fileStorage := minio_storage.NewCourseFileStorage(minioStorage, cfg.Minio.FileBucket, cfg.Minio.PresignTTL)

	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	lessonRepo := postgres.NewLessonPostgres(pg.Pool)
	enrollmentRepo := postgres.NewEnrollmentPostgres(pg.Pool)
	progressRepo := postgres.NewProgressPostgres(pg.Pool)
	studentRepo := postgres.NewStudentPostgres(pg.Pool)

	u := service.Collection{
		CatalogService:    catalog.NewCatalogService(log, courseRepo, lessonRepo, searchRepo, fileStorage),
		EnrollmentService: enrollment.NewEnrollmentService(log, courseRepo, enrollmentRepo, studentRepo),
		ProgressService:   progress.NewProgressService(log, lessonRepo, enrollmentRepo, progressRepo),
		AccessService:     access.NewAccessService(log, courseRepo, lessonRepo, enrollmentRepo, progressRepo, fileStorage),
	}

	r := http.InitRoutes(log, cfg.JWT.SecretKey, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server stopped", err)
	}
	if err = srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
