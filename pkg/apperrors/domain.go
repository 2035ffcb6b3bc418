package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (409)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// ErrRemoteUnavailable - внешний сервис (платежный провайдер) недоступен (503)
func ErrRemoteUnavailable(err error, domain string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, "External service unavailable", http.StatusServiceUnavailable)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// --- Hires ---

// ErrActiveHireExists - между клиентом и специалистом уже есть активная заявка.
var ErrActiveHireExists = New(
	CodeConflict,
	"hire",
	"An active hire already exists between these users",
	http.StatusConflict,
)

// ErrInvalidHireTransition - переход статуса не разрешен из текущего состояния.
var ErrInvalidHireTransition = New(
	CodeInvalidStatus,
	"hire",
	"Hire status does not allow this transition",
	http.StatusConflict,
)

// ErrHireAccessDenied - пользователь не является стороной заявки.
var ErrHireAccessDenied = New(
	CodeForbidden,
	"hire",
	"You are not a party of this hire",
	http.StatusForbidden,
)

// --- Reviews ---

// ErrDuplicateReview - отзыв по этой заявке уже существует.
var ErrDuplicateReview = New(
	CodeAlreadyExists,
	"review",
	"A review for this hire already exists",
	http.StatusConflict,
)

// ErrHireAlreadyReviewed - гостевой токен уже использован.
var ErrHireAlreadyReviewed = New(
	CodeAlreadyExists,
	"review",
	"This hire has already been reviewed",
	http.StatusConflict,
)

// ErrHireNotCompleted - отзыв возможен только по завершенной заявке.
var ErrHireNotCompleted = New(
	CodeInvalidStatus,
	"review",
	"Reviews are only allowed for completed hires",
	http.StatusConflict,
)

// --- Chat ---

// ErrConversationAccessDenied - пользователь не участник диалога.
var ErrConversationAccessDenied = New(
	CodeForbidden,
	"chat",
	"Access to conversation denied",
	http.StatusForbidden,
)

// ErrSelfConversation - нельзя открыть диалог с самим собой.
var ErrSelfConversation = New(
	CodeInvalidOperation,
	"chat",
	"Cannot start a conversation with yourself",
	http.StatusBadRequest,
)

// ErrMessageLimitReached - исчерпан лимит сообщений без premium-подписки.
var ErrMessageLimitReached = New(
	CodeLimitExceeded,
	"subscription",
	"Monthly message limit reached. Upgrade to premium to continue.",
	http.StatusForbidden,
)

// --- Subscriptions & Payments ---

// ErrSubscriptionCancelled - подписка уже отменена.
var ErrSubscriptionCancelled = New(
	CodeInvalidOperation,
	"subscription",
	"Subscription is already cancelled",
	http.StatusBadRequest,
)

// ErrNoActiveSubscription - у пользователя нет подписки, которую можно отменить.
var ErrNoActiveSubscription = New(
	CodeInvalidOperation,
	"subscription",
	"No active subscription to cancel",
	http.StatusBadRequest,
)

// ErrPaymentProvider - общая ошибка интеграции с платежным провайдером.
var ErrPaymentProvider = New(
	CodeExternalServiceError,
	"payment",
	"Payment provider error",
	http.StatusServiceUnavailable,
)

// --- Auth & User ---

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrNotProfessional - операция доступна только специалистам.
var ErrNotProfessional = New(
	CodeInvalidOperation,
	"business_logic",
	"This operation is only available to professionals",
	http.StatusBadRequest,
)

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)
