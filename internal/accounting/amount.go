package accounting

import (
	"math"
	"strconv"
	"strings"
)

// placeholders - значения, которыми сервис распознавания помечает отсутствующее поле
var placeholders = []string{
	"not specified",
	"не указана",
	"не указан",
	"не указано",
}

// IsPlaceholder проверяет, является ли значение пустым или заглушкой "не указано"
func IsPlaceholder(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return true
	}
	for _, p := range placeholders {
		if v == p {
			return true
		}
	}
	return false
}

// NormalizeAmount извлекает числовое значение из строки суммы.
//
// Оставляет только цифры, запятую, точку и минус, запятую считает десятичным
// разделителем. Пустая строка, заглушка и любая ошибка разбора дают 0.0.
// Ноль здесь означает "сумма не определена", а не нулевую операцию.
func NormalizeAmount(raw string) float64 {
	if IsPlaceholder(raw) {
		return 0.0
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	// Хвост от суффиксов валюты: "руб.", "currency-units"
	cleaned = strings.TrimRight(cleaned, ".-")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0.0
	}
	return value
}
