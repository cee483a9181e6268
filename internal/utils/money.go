package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundHalfUp2 四舍五入保留两位小数。
// 佣金按每档独立舍入后再求和，顺序不可调换（对账口径）。
func RoundHalfUp2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatPrice 金额格式化为两位小数字符串，非法输入（NaN/Inf）按零处理
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}

// FormatDecimal 金额格式化为两位小数字符串
func FormatDecimal(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// Percent 百分比费率转系数，如 5 -> 0.05
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Div(decimal.NewFromInt(100))
}
