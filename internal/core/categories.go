package core

// Default category lists offered by the entry forms. Storage does not
// enforce them.
var (
	DefaultIncomeCategories = []string{
		"Salary",
		"Business",
		"Investments",
		"Rental",
		"Dividend",
		"Gift",
		"Interest",
		"Other",
	}

	DefaultExpenseCategories = []string{
		"Food",
		"Groceries",
		"Transportation",
		"Utilities",
		"Rent",
		"Entertainment",
		"Shopping",
		"Health",
		"Education",
		"Insurance",
		"EMI",
		"Travel",
		"Other",
	}
)

// CategoriesFor returns a copy of the default categories for a transaction type.
func CategoriesFor(t TransactionType) []string {
	if t == Income {
		return append([]string(nil), DefaultIncomeCategories...)
	}
	return append([]string(nil), DefaultExpenseCategories...)
}
