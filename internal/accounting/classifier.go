package accounting

import (
	"strings"
)

// Коды бухгалтерских счетов
const (
	AccountSupplierSettlements = "60.01" // расчеты с поставщиками
	AccountMainProduction      = "20"    // основное производство
	AccountPayroll             = "70"    // расчеты по оплате труда
	AccountTaxes               = "68"    // расчеты по налогам и сборам
	AccountOtherIncomeExpense  = "91.02" // прочие расходы
)

// Rule сопоставляет ключевые слова назначения платежа со счетом
type Rule struct {
	Keywords    []string `json:"keywords"`
	AccountCode string   `json:"account_code"`
}

// rules проверяются по порядку, побеждает первое совпадение
var rules = []Rule{
	{Keywords: []string{"invoice", "счет-фактура", "счёт-фактура"}, AccountCode: AccountSupplierSettlements},
	{Keywords: []string{"act", "deed", "акт"}, AccountCode: AccountMainProduction},
	{Keywords: []string{"salary", "payroll", "зарплата"}, AccountCode: AccountPayroll},
	{Keywords: []string{"tax", "налог"}, AccountCode: AccountTaxes},
}

// ClassifyTransaction определяет счет по назначению платежа.
// Пустое или нераспознанное назначение относится на 91.02.
func ClassifyTransaction(purpose string) string {
	if purpose == "" {
		return AccountOtherIncomeExpense
	}

	text := strings.ToLower(purpose)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.AccountCode
			}
		}
	}
	return AccountOtherIncomeExpense
}

// Rules возвращает копию таблицы правил в порядке применения
func Rules() []Rule {
	result := make([]Rule, 0, len(rules)+1)
	for _, rule := range rules {
		result = append(result, Rule{
			Keywords:    append([]string(nil), rule.Keywords...),
			AccountCode: rule.AccountCode,
		})
	}
	return append(result, Rule{Keywords: []string{}, AccountCode: AccountOtherIncomeExpense})
}
