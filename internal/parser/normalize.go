package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
)

var (
	currencyTokenRe = regexp.MustCompile(`(?i)(?:rs\.?|inr)`)
	currencyStripRe = regexp.MustCompile(`[\p{Sc},\s]`)
)

// NormalizeCurrency 金额清洗：去掉货币符号、千分位和空白
// "NA"/""/"None" 记为 0；其余无法识别的内容同样记为 0，ok=false
func NormalizeCurrency(raw string) (decimal.Decimal, bool) {
	s := currencyTokenRe.ReplaceAllString(raw, "")
	s = currencyStripRe.ReplaceAllString(s, "")
	switch s {
	case "", model.Sentinel, "None", "nan", "NaN":
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// NormalizeCurrencyColumn 整列金额清洗；存在无法识别的单元格时返回告警
func NormalizeCurrencyColumn(column string, values []string) ([]decimal.Decimal, *NormalizationWarning) {
	out := make([]decimal.Decimal, len(values))
	bad := 0
	for i, v := range values {
		d, ok := NormalizeCurrency(v)
		if !ok {
			bad++
		}
		out[i] = d
	}
	if bad == 0 {
		return out, nil
	}
	return out, &NormalizationWarning{
		Column:  column,
		Count:   bad,
		Message: fmt.Sprintf("%s: %d 个单元格无法识别为金额，已按 0 处理", column, bad),
	}
}

type dateStrategy struct {
	name  string
	parse func(string) (time.Time, bool)
}

// dateStrategies 按优先级排列；整列采用第一个至少成功一次的策略
var dateStrategies = []dateStrategy{
	{name: "day-first", parse: parseDayFirst},
	{name: "DD-MM-YYYY", parse: layoutParser("2-1-2006")},
	{name: "YYYY-MM-DD", parse: layoutParser("2006-1-2")},
	{name: "DD/MM/YYYY", parse: layoutParser("2/1/2006")},
}

// NormalizeDateColumn 整列日期解析
func NormalizeDateColumn(column string, values []string) ([]model.Date, *NormalizationWarning) {
	out := make([]model.Date, len(values))

	empty := true
	for _, v := range values {
		if !isBlank(v) && strings.TrimSpace(v) != model.Sentinel {
			empty = false
			break
		}
	}
	if empty {
		return out, nil
	}

	for _, st := range dateStrategies {
		parsed := make([]model.Date, len(values))
		hits := 0
		for i, v := range values {
			v = strings.TrimSpace(v)
			if v == "" || v == model.Sentinel {
				continue
			}
			if t, ok := st.parse(v); ok {
				parsed[i] = model.Date{Time: t, Valid: true}
				hits++
			}
		}
		if hits > 0 {
			return parsed, nil
		}
	}

	return out, &NormalizationWarning{
		Column:  column,
		Count:   len(values),
		Message: fmt.Sprintf("%s: 无法识别为日期", column),
	}
}

// parseDayFirst 通用解析（日在前），兼容 Excel 日期序列号
func parseDayFirst(s string) (time.Time, bool) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		// 纯数字只按 Excel 序列号解释（1900-01-01 .. 9999-12-31）
		if serial < 1 || serial > 2958465 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return dateOnly(t), true
	}
	t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false), dateparse.RetryAmbiguousDateWithSwap(true))
	if err != nil {
		return time.Time{}, false
	}
	return dateOnly(t), true
}

func layoutParser(layout string) func(string) (time.Time, bool) {
	return func(s string) (time.Time, bool) {
		t, err := time.Parse(layout, s)
		if err != nil {
			return time.Time{}, false
		}
		return dateOnly(t), true
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
