package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
)

// SubscriptionWorker периодически закрывает истекшие подписки:
// статус переводится в expired, premium-флаг в профиле снимается.
// Предикат entitlement и без воркера отсекает истекший end_date,
// воркер лишь приводит хранимое состояние в соответствие.
type SubscriptionWorker struct {
	db               *gorm.DB
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
	interval         time.Duration
}

func NewSubscriptionWorker(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	professionalRepo repositories.ProfessionalRepository,
	interval time.Duration,
) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{
		db:               db,
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
		interval:         interval,
	}
}

// Run крутит цикл до отмены контекста. Первый проход сразу при старте.
func (w *SubscriptionWorker) Run(ctx context.Context) {
	w.sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *SubscriptionWorker) sweep() {
	now := time.Now()

	expired, err := w.userRepo.ExpireSubscriptions(w.db, now)
	if err != nil {
		logger.WithError(err).Error("subscription sweep: expire failed")
		return
	}

	cleared, err := w.professionalRepo.ClearExpiredPremium(w.db, now)
	if err != nil {
		logger.WithError(err).Error("subscription sweep: premium clear failed")
		return
	}

	if expired > 0 || cleared > 0 {
		logger.Info("subscription sweep done", "expired", expired, "premium_cleared", cleared)
	}
}
