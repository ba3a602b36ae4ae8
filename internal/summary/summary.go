// Package summary считает производные показатели по набору записей:
// итоги, средние, максимумы, группировки по дням, категориям и месяцам,
// а также срабатывание порога бюджета или цели.
//
// Все функции чистые и пересчитывают результат с нуля по переданному срезу.
package summary

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"example.com/expense-tracker/internal/models"
)

const (
	NoMonth = "N/A"

	dayLayout = "2006-01-02"
)

// Palette задает цвета категорий по индексу первого появления.
var Palette = []string{
	"#a855f7",
	"#f59e42",
	"#10b981",
	"#ef4444",
	"#6366f1",
	"#fbbf24",
	"#3b82f6",
	"#eab308",
	"#14b8a6",
	"#f472b6",
}

var hundred = decimal.NewFromInt(100)

type Entry struct {
	Amount   decimal.Decimal
	Date     time.Time
	Category string
}

type DayTotal struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type CategoryTotal struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Color  string          `json:"color"`
}

type CategoryDay struct {
	Date       string                     `json:"date"`
	Categories map[string]decimal.Decimal `json:"categories"`
}

type MonthTotal struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type Threshold struct {
	Value    decimal.Decimal `json:"value"`
	Reached  bool            `json:"reached"`
	Progress float64         `json:"progress"`
}

type Report struct {
	Count         int             `json:"count"`
	Total         decimal.Decimal `json:"total"`
	Average       decimal.Decimal `json:"average"`
	Highest       decimal.Decimal `json:"highest"`
	ByDay         []DayTotal      `json:"byDay"`
	ByCategory    []CategoryTotal `json:"byCategory"`
	ByCategoryDay []CategoryDay   `json:"byCategoryDay"`
	ByMonth       []MonthTotal    `json:"byMonth"`
	BestMonth     MonthTotal      `json:"bestMonth"`
	Threshold     Threshold       `json:"threshold"`
}

// Compute собирает полный отчет по записям и порогу.
func Compute(entries []Entry, threshold decimal.Decimal) Report {
	total := Total(entries)
	months := ByMonth(entries)

	return Report{
		Count:         len(entries),
		Total:         total,
		Average:       Average(entries),
		Highest:       Highest(entries),
		ByDay:         ByDay(entries),
		ByCategory:    ByCategory(entries),
		ByCategoryDay: ByCategoryDay(entries),
		ByMonth:       months,
		BestMonth:     BestMonth(months),
		Threshold:     Evaluate(total, threshold),
	}
}

// Total возвращает сумму всех записей.
func Total(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Amount)
	}
	return total
}

// Average возвращает точное частное с точностью decimal.DivisionPrecision,
// 0 для пустого набора. Округление остается на стороне отображения.
func Average(entries []Entry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}

	return Total(entries).Div(decimal.NewFromInt(int64(len(entries))))
}

// Highest возвращает наибольшую сумму, 0 для пустого набора.
func Highest(entries []Entry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}

	highest := entries[0].Amount
	for _, entry := range entries[1:] {
		if entry.Amount.GreaterThan(highest) {
			highest = entry.Amount
		}
	}
	return highest
}

// ByDay группирует суммы по календарной дате (UTC) по возрастанию.
func ByDay(entries []Entry) []DayTotal {
	days := make([]DayTotal, 0)
	index := make(map[string]int)

	for _, entry := range entries {
		key := DayKey(entry.Date)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, DayTotal{Date: key, Amount: decimal.Zero})
		}
		days[i].Amount = days[i].Amount.Add(entry.Amount)
	}

	sortDays(days)
	return days
}

// ByCategory группирует суммы по категории в порядке первого появления.
func ByCategory(entries []Entry) []CategoryTotal {
	categories := make([]CategoryTotal, 0)
	index := make(map[string]int)

	for _, entry := range entries {
		name := CategoryName(entry.Category)
		i, ok := index[name]
		if !ok {
			i = len(categories)
			index[name] = i
			categories = append(categories, CategoryTotal{Name: name, Amount: decimal.Zero, Color: ColorAt(i)})
		}
		categories[i].Amount = categories[i].Amount.Add(entry.Amount)
	}

	return categories
}

// ByCategoryDay раскладывает суммы каждого дня по категориям.
func ByCategoryDay(entries []Entry) []CategoryDay {
	days := make([]CategoryDay, 0)
	index := make(map[string]int)

	for _, entry := range entries {
		key := DayKey(entry.Date)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, CategoryDay{Date: key, Categories: make(map[string]decimal.Decimal)})
		}

		name := CategoryName(entry.Category)
		days[i].Categories[name] = days[i].Categories[name].Add(entry.Amount)
	}

	sortCategoryDays(days)
	return days
}

// ByMonth группирует суммы по названию месяца в порядке первого появления.
// Записи разных лет с одинаковым месяцем попадают в одну группу.
func ByMonth(entries []Entry) []MonthTotal {
	months := make([]MonthTotal, 0)
	index := make(map[string]int)

	for _, entry := range entries {
		key := entry.Date.UTC().Month().String()
		i, ok := index[key]
		if !ok {
			i = len(months)
			index[key] = i
			months = append(months, MonthTotal{Month: key, Amount: decimal.Zero})
		}
		months[i].Amount = months[i].Amount.Add(entry.Amount)
	}

	return months
}

// BestMonth возвращает месяц с наибольшей суммой; при равенстве побеждает первый.
func BestMonth(months []MonthTotal) MonthTotal {
	if len(months) == 0 {
		return MonthTotal{Month: NoMonth, Amount: decimal.Zero}
	}

	best := months[0]
	for _, month := range months[1:] {
		if month.Amount.GreaterThan(best.Amount) {
			best = month
		}
	}
	return best
}

// Evaluate сравнивает итог с порогом. Неположительный порог считается не заданным.
func Evaluate(total, threshold decimal.Decimal) Threshold {
	result := Threshold{Value: threshold}
	if !threshold.IsPositive() {
		return result
	}

	result.Reached = total.GreaterThanOrEqual(threshold)

	progress := total.Div(threshold).Mul(hundred)
	if progress.GreaterThan(hundred) {
		progress = hundred
	}
	if progress.IsNegative() {
		progress = decimal.Zero
	}
	result.Progress = progress.Round(2).InexactFloat64()

	return result
}

// DayKey возвращает дату записи в формате YYYY-MM-DD по UTC.
func DayKey(date time.Time) string {
	return date.UTC().Format(dayLayout)
}

// CategoryName подставляет категорию по умолчанию вместо пустой.
func CategoryName(category string) string {
	if category == "" {
		return models.DefaultCategory
	}
	return category
}

// ColorAt возвращает цвет палитры для позиции категории.
func ColorAt(index int) string {
	return Palette[index%len(Palette)]
}

func sortDays(days []DayTotal) {
	slices.SortFunc(days, func(a, b DayTotal) int {
		return strings.Compare(a.Date, b.Date)
	})
}

func sortCategoryDays(days []CategoryDay) {
	slices.SortFunc(days, func(a, b CategoryDay) int {
		return strings.Compare(a.Date, b.Date)
	})
}
