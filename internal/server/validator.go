package server

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"example.com/finlit-quest/backend/internal/models"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator создает валидатор на базе go-playground/validator с
// доменным правилом expensecategory для категорий расходов.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("expensecategory", validExpenseCategory)
	return &CustomValidator{validator: v}
}

// Validate запускает проверку структуры по тегам.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func validExpenseCategory(fl validator.FieldLevel) bool {
	raw := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	return models.IsValidCategory(models.ExpenseCategory(raw))
}
