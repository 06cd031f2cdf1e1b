package service

import (
	"github.com/coursify/marketplace-api/internal/config"
	"github.com/coursify/marketplace-api/internal/metrics"
	"github.com/coursify/marketplace-api/internal/repository"
	"github.com/coursify/marketplace-api/internal/token"
	"go.uber.org/zap"
)

type Services struct {
	Tokens   *token.Service
	Auth     *AuthService
	Course   *CourseService
	Lesson   *LessonService
	Purchase *PurchaseService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *Services {
	tokens := token.NewService(repos.User, cfg, log, m)

	return &Services{
		Tokens:   tokens,
		Auth:     NewAuthService(repos.User, tokens, log, m),
		Course:   NewCourseService(repos.Course),
		Lesson:   NewLessonService(repos.Lesson, repos.Course),
		Purchase: NewPurchaseService(repos.Course, repos.Purchase, log, m),
	}
}
