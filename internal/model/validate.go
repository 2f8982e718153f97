package model

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("yyyymmdd", func(fl validator.FieldLevel) bool {
			d, err := time.Parse(DateLayout, fl.Field().String())
			return err == nil && d.Year() >= MinYear
		})
		_ = validate.RegisterValidation("txtype", func(fl validator.FieldLevel) bool {
			return TxType(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Normalize trims surrounding whitespace from the free-text fields.
func (t Transaction) Normalize() Transaction {
	t.Date = strings.TrimSpace(t.Date)
	t.MainCategory = strings.TrimSpace(t.MainCategory)
	t.SubCategory = strings.TrimSpace(t.SubCategory)
	t.PaymentMethod = strings.TrimSpace(t.PaymentMethod)
	t.Memo = strings.TrimSpace(t.Memo)
	return t
}

// Validate checks the entry-time invariants of a transaction. Failures are
// returned as *ValidationError.
func (t Transaction) Validate() error {
	err := validatorInstance().Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

// CheckCatalog verifies that the transaction's main category and payment
// method are offered for its type. Expense categories come from the
// category table, so callers pass them in.
func (t Transaction) CheckCatalog(expenseCategories []string) error {
	categories := IncomeCategories
	if t.Type == Expense {
		categories = expenseCategories
	}

	fields := make(map[string]string)
	if !contains(categories, t.MainCategory) {
		fields["MainCategory"] = "catalog"
	}
	if !contains(PaymentMethodsFor(t.Type), t.PaymentMethod) {
		fields["PaymentMethod"] = "catalog"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
