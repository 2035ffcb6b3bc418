package models

type HireStatus string
type SubscriptionType string
type SubscriptionStatus string

const (
	HireStatusPending               HireStatus = "pending"
	HireStatusInProgress            HireStatus = "in_progress"
	HireStatusWaitingClientApproval HireStatus = "waiting_client_approval"
	HireStatusCompleted             HireStatus = "completed"
	HireStatusRejected              HireStatus = "rejected"
	HireStatusCancelled             HireStatus = "cancelled"

	SubscriptionTypeFree    SubscriptionType = "free"
	SubscriptionTypePremium SubscriptionType = "premium"

	SubscriptionStatusInactive  SubscriptionStatus = "inactive"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// hireTransitions - единственная авторитетная таблица переходов статусов заявки.
// Любое изменение статуса проходит через CanTransition; прямых присваиваний
// статуса в сервисах нет.
var hireTransitions = map[HireStatus][]HireStatus{
	HireStatusPending:               {HireStatusInProgress, HireStatusRejected, HireStatusCancelled},
	HireStatusInProgress:            {HireStatusWaitingClientApproval, HireStatusCompleted, HireStatusCancelled},
	HireStatusWaitingClientApproval: {HireStatusCompleted, HireStatusInProgress, HireStatusCancelled},
	// completed, rejected, cancelled - терминальные
}

// CanTransition сообщает, разрешен ли переход from -> to.
func CanTransition(from, to HireStatus) bool {
	for _, next := range hireTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal сообщает, является ли статус терминальным.
func (s HireStatus) IsTerminal() bool {
	switch s {
	case HireStatusCompleted, HireStatusRejected, HireStatusCancelled:
		return true
	}
	return false
}

// ActiveHireStatuses - статусы, при которых между парой пользователей
// не может быть создана вторая заявка.
var ActiveHireStatuses = []HireStatus{
	HireStatusPending,
	HireStatusInProgress,
	HireStatusWaitingClientApproval,
}
