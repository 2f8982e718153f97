package model

// ExpenseCategories are the seeded default main categories for expenses.
var ExpenseCategories = []string{
	"식비",
	"주거/관리비",
	"교통/차량",
	"생활용품",
	"육아/교육",
	"의료/건강",
	"문화/여가",
	"금융/보험",
	"기타",
}

// IncomeCategories are the main categories offered for income entries.
var IncomeCategories = []string{
	"급여",
	"부수입",
	"용돈",
	"금융수입",
	"기타수입",
}

// ExpensePaymentMethods are the payment methods offered for expenses.
var ExpensePaymentMethods = []string{
	"현금",
	"체크카드",
	"신용카드",
	"전월정산",
	"계좌이체",
}

// IncomePaymentMethods are the payment methods offered for income.
var IncomePaymentMethods = []string{
	"현금",
	"계좌이체",
}

// PaymentMethodsFor returns the payment methods offered for a type.
func PaymentMethodsFor(t TxType) []string {
	if t == Income {
		return IncomePaymentMethods
	}
	return ExpensePaymentMethods
}

// IsDefaultCategory reports whether name is one of the seeded expense
// categories.
func IsDefaultCategory(name string) bool {
	return contains(ExpenseCategories, name)
}
