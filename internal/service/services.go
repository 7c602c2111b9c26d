package service

import (
	"github.com/sathaneem/aadhi-academy/internal/service/access"
	"github.com/sathaneem/aadhi-academy/internal/service/catalog"
	"github.com/sathaneem/aadhi-academy/internal/service/enrollment"
	"github.com/sathaneem/aadhi-academy/internal/service/progress"
)

type Collection struct {
	*catalog.CatalogService
	*enrollment.EnrollmentService
	*progress.ProgressService
	*access.AccessService
}
