package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode - код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolationCode = "23505"

// isUniqueViolation распознает нарушение уникальности на уровне хранилища.
// Уникальные индексы - основная защита от гонок (дубликат отзыва,
// повторный диалог пары, повторная обработка платежа).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}
