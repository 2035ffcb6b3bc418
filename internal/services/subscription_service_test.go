package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

func TestIsEntitled(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(10 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	cases := []struct {
		name     string
		subType  models.SubscriptionType
		status   models.SubscriptionStatus
		endDate  *time.Time
		expected bool
	}{
		{
			name:     "active premium until future",
			subType:  models.SubscriptionTypePremium,
			status:   models.SubscriptionStatusActive,
			endDate:  &future,
			expected: true,
		},
		{
			name:    "cancelled premium keeps access until end of paid period",
			subType: models.SubscriptionTypePremium,
			status:  models.SubscriptionStatusCancelled,
			endDate: &future,
			// Отмена не обнуляет end_date, доступ до конца периода
			expected: true,
		},
		{
			name:     "active premium with past end date",
			subType:  models.SubscriptionTypePremium,
			status:   models.SubscriptionStatusActive,
			endDate:  &past,
			expected: false,
		},
		{
			name:     "cancelled premium with past end date",
			subType:  models.SubscriptionTypePremium,
			status:   models.SubscriptionStatusCancelled,
			endDate:  &past,
			expected: false,
		},
		{
			name:     "expired status regardless of end date",
			subType:  models.SubscriptionTypePremium,
			status:   models.SubscriptionStatusExpired,
			endDate:  &future,
			expected: false,
		},
		{
			name:     "inactive status",
			subType:  models.SubscriptionTypePremium,
			status:   models.SubscriptionStatusInactive,
			endDate:  &future,
			expected: false,
		},
		{
			name:     "free type never entitled",
			subType:  models.SubscriptionTypeFree,
			status:   models.SubscriptionStatusActive,
			endDate:  &future,
			expected: false,
		},
		{
			name:     "premium without end date",
			subType:  models.SubscriptionTypePremium,
			status:   models.SubscriptionStatusActive,
			endDate:  nil,
			expected: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := &models.User{
				SubscriptionType:    tc.subType,
				SubscriptionStatus:  tc.status,
				SubscriptionEndDate: tc.endDate,
			}
			assert.Equal(t, tc.expected, IsEntitled(user, now))
		})
	}
}

func TestIsEntitled_EndDateBoundary(t *testing.T) {
	now := time.Now()
	user := &models.User{
		SubscriptionType:    models.SubscriptionTypePremium,
		SubscriptionStatus:  models.SubscriptionStatusActive,
		SubscriptionEndDate: &now,
	}
	// end_date == now: период уже закончился
	assert.False(t, IsEntitled(user, now))
}
