package handler

import (
	"errors"
	"strings"
	"sync"

	"choicefiction/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators добавляет правило statsum в валидатор gin.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("statsum", validateStatSum)
	})
}

func validateStatSum(fl validator.FieldLevel) bool {
	stats, ok := fl.Field().Interface().(models.Stats)
	if !ok {
		return false
	}
	return stats.Total() <= models.StatTotal
}

// bindError превращает ошибку ShouldBindJSON в ValidationError с понятным сообщением.
func bindError(err error) error {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			if fe.Tag() == "statsum" {
				return models.NewValidationError(models.MsgStatsSumExceeded)
			}
			if strings.Contains(fe.Namespace(), ".Stats.") {
				return models.NewValidationError("능력치는 0-100 사이여야 합니다.")
			}
		}
		return models.NewValidationError(models.MsgMissingFields)
	}
	// Синтаксис JSON или неверный тип поля.
	return models.NewValidationError(models.MsgInvalidRequest)
}
