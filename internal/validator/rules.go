package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Критическая ошибка конфигурации - приложение не должно запускаться
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-hire-status': Проверяет, что статус заявки валиден
	mustRegister("is-hire-status", validateHireStatus)
}

func validateHireStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения обрабатывает 'required'
	}

	switch models.HireStatus(value) {
	case models.HireStatusPending, models.HireStatusInProgress,
		models.HireStatusWaitingClientApproval, models.HireStatusCompleted,
		models.HireStatusRejected, models.HireStatusCancelled:
		return true
	default:
		return false
	}
}
