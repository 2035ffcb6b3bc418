package contextkeys

// Свой тип ключа исключает коллизии со строковыми ключами других пакетов.
type ctxKey string

// DBContextKey - под ним лежит *gorm.DB: пул соединений в рантайме,
// транзакция теста в интеграционных прогонах.
const DBContextKey = ctxKey("cyw_db")
