package summary

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"example.com/expense-tracker/internal/models"
)

func entry(amount, date, category string) Entry {
	parsed, err := time.Parse(time.RFC3339, date)
	if err != nil {
		parsed, err = time.Parse(dayLayout, date)
		if err != nil {
			panic(err)
		}
	}
	return Entry{Amount: decimal.RequireFromString(amount), Date: parsed, Category: category}
}

func sample() []Entry {
	return []Entry{
		entry("200", "2024-03-02", "Food"),
		entry("100", "2024-03-02", "Food"),
		entry("45.5", "2024-02-14T18:30:00Z", "Transport"),
		entry("12.25", "2024-01-01", ""),
		entry("80", "2023-03-20", "Housing"),
	}
}

// TestEmptyReport проверяет нулевые значения для пустого набора.
func TestEmptyReport(t *testing.T) {
	report := Compute(nil, decimal.Zero)

	if report.Count != 0 || !report.Total.IsZero() || !report.Average.IsZero() || !report.Highest.IsZero() {
		t.Fatalf("expected zero aggregates, got %+v", report)
	}
	if report.BestMonth.Month != NoMonth || !report.BestMonth.Amount.IsZero() {
		t.Fatalf("expected N/A best month, got %+v", report.BestMonth)
	}
	if report.ByDay == nil || report.ByCategory == nil || report.ByMonth == nil {
		t.Fatal("expected empty slices, not nil")
	}
	if report.Threshold.Reached {
		t.Fatal("expected threshold not reached")
	}
}

// TestBasicAggregates проверяет итог, среднее и максимум.
func TestBasicAggregates(t *testing.T) {
	entries := sample()

	if got := Total(entries); !got.Equal(decimal.RequireFromString("437.75")) {
		t.Fatalf("expected total 437.75, got %s", got)
	}
	if got := Average(entries); !got.Equal(decimal.RequireFromString("87.55")) {
		t.Fatalf("expected average 87.55, got %s", got)
	}
	if got := Highest(entries); !got.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected highest 200, got %s", got)
	}
}

// TestAverageKeepsPrecision проверяет, что среднее не округляется до копеек.
func TestAverageKeepsPrecision(t *testing.T) {
	entries := []Entry{
		entry("10", "2024-01-01", "Food"),
		entry("0", "2024-01-02", "Food"),
		entry("0", "2024-01-03", "Food"),
	}

	got := Average(entries)
	if !got.Equal(decimal.RequireFromString("3.3333333333333333")) {
		t.Fatalf("expected 3.3333333333333333, got %s", got)
	}
	if got.StringFixed(2) != "3.33" {
		t.Fatalf("expected 3.33 for display, got %s", got.StringFixed(2))
	}
}

// TestCategoryNameDefault проверяет общую категорию по умолчанию.
func TestCategoryNameDefault(t *testing.T) {
	if got := CategoryName(""); got != models.DefaultCategory {
		t.Fatalf("expected %s, got %s", models.DefaultCategory, got)
	}
	if got := CategoryName("Food"); got != "Food" {
		t.Fatalf("expected Food, got %s", got)
	}
}

// TestByDaySameDate проверяет сложение записей одного дня и сортировку по возрастанию.
func TestByDaySameDate(t *testing.T) {
	days := ByDay(sample())

	wantDates := []string{"2023-03-20", "2024-01-01", "2024-02-14", "2024-03-02"}
	gotDates := make([]string, 0, len(days))
	for _, day := range days {
		gotDates = append(gotDates, day.Date)
	}
	if !reflect.DeepEqual(gotDates, wantDates) {
		t.Fatalf("expected %v, got %v", wantDates, gotDates)
	}

	if !days[3].Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected 300 for 2024-03-02, got %s", days[3].Amount)
	}
}

// TestByDayUsesUTC проверяет усечение даты по UTC.
func TestByDayUsesUTC(t *testing.T) {
	local := time.FixedZone("UTC+5", 5*60*60)
	entries := []Entry{{Amount: decimal.NewFromInt(1), Date: time.Date(2024, 1, 2, 2, 0, 0, 0, local), Category: "Food"}}

	days := ByDay(entries)
	if days[0].Date != "2024-01-01" {
		t.Fatalf("expected 2024-01-01, got %s", days[0].Date)
	}
}

// TestByCategoryOrderAndColors проверяет порядок первого появления, Other и палитру.
func TestByCategoryOrderAndColors(t *testing.T) {
	categories := ByCategory(sample())

	want := []CategoryTotal{
		{Name: "Food", Amount: decimal.NewFromInt(300), Color: Palette[0]},
		{Name: "Transport", Amount: decimal.RequireFromString("45.5"), Color: Palette[1]},
		{Name: "Other", Amount: decimal.RequireFromString("12.25"), Color: Palette[2]},
		{Name: "Housing", Amount: decimal.NewFromInt(80), Color: Palette[3]},
	}

	if len(categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(categories))
	}
	for i := range want {
		if categories[i].Name != want[i].Name || categories[i].Color != want[i].Color || !categories[i].Amount.Equal(want[i].Amount) {
			t.Fatalf("position %d: expected %+v, got %+v", i, want[i], categories[i])
		}
	}
}

// TestColorAtCycles проверяет циклический обход палитры.
func TestColorAtCycles(t *testing.T) {
	if ColorAt(len(Palette)) != Palette[0] {
		t.Fatal("expected palette to wrap around")
	}
	if ColorAt(len(Palette)+3) != Palette[3] {
		t.Fatal("expected palette index modulo length")
	}
}

// TestByMonthAndBest проверяет группировку по месяцам и выбор лучшего месяца.
func TestByMonthAndBest(t *testing.T) {
	months := ByMonth(sample())

	wantNames := []string{"March", "February", "January"}
	if len(months) != len(wantNames) {
		t.Fatalf("expected %d months, got %d", len(wantNames), len(months))
	}
	for i, name := range wantNames {
		if months[i].Month != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, months[i].Month)
		}
	}

	// Март 2023 и март 2024 попадают в одну группу.
	if !months[0].Amount.Equal(decimal.NewFromInt(380)) {
		t.Fatalf("expected March 380, got %s", months[0].Amount)
	}

	best := BestMonth(months)
	if best.Month != "March" {
		t.Fatalf("expected March as best month, got %s", best.Month)
	}
}

// TestBestMonthTie проверяет, что при равенстве выигрывает первый месяц.
func TestBestMonthTie(t *testing.T) {
	months := []MonthTotal{
		{Month: "May", Amount: decimal.NewFromInt(50)},
		{Month: "June", Amount: decimal.NewFromInt(50)},
	}

	if got := BestMonth(months); got.Month != "May" {
		t.Fatalf("expected May, got %s", got.Month)
	}
}

// TestTotalsAgree проверяет, что итог совпадает с суммами групп.
func TestTotalsAgree(t *testing.T) {
	entries := sample()
	total := Total(entries)

	byCategory := decimal.Zero
	for _, category := range ByCategory(entries) {
		byCategory = byCategory.Add(category.Amount)
	}

	byMonth := decimal.Zero
	for _, month := range ByMonth(entries) {
		byMonth = byMonth.Add(month.Amount)
	}

	byDay := decimal.Zero
	for _, day := range ByDay(entries) {
		byDay = byDay.Add(day.Amount)
	}

	if !total.Equal(byCategory) || !total.Equal(byMonth) || !total.Equal(byDay) {
		t.Fatalf("totals disagree: total=%s category=%s month=%s day=%s", total, byCategory, byMonth, byDay)
	}
}

// TestComputeIdempotent проверяет, что повторный расчет дает тот же отчет.
func TestComputeIdempotent(t *testing.T) {
	entries := sample()
	threshold := decimal.NewFromInt(400)

	first := Compute(entries, threshold)
	second := Compute(entries, threshold)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical reports:\n%+v\n%+v", first, second)
	}
}

// TestByCategoryDay проверяет разбивку дня по категориям.
func TestByCategoryDay(t *testing.T) {
	entries := []Entry{
		entry("10", "2024-01-01", "Food"),
		entry("5", "2024-01-01", "Transport"),
		entry("7", "2024-01-01", "Food"),
	}

	days := ByCategoryDay(entries)
	if len(days) != 1 {
		t.Fatalf("expected one day, got %d", len(days))
	}
	if !days[0].Categories["Food"].Equal(decimal.NewFromInt(17)) {
		t.Fatalf("expected Food 17, got %s", days[0].Categories["Food"])
	}
	if !days[0].Categories["Transport"].Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected Transport 5, got %s", days[0].Categories["Transport"])
	}
}

// TestEvaluate проверяет срабатывание порога и прогресс.
func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		threshold string
		reached   bool
		progress  float64
	}{
		{name: "below", total: "50", threshold: "200", reached: false, progress: 25},
		{name: "equal", total: "200", threshold: "200", reached: true, progress: 100},
		{name: "above is capped", total: "300", threshold: "200", reached: true, progress: 100},
		{name: "unset threshold", total: "300", threshold: "0", reached: false, progress: 0},
		{name: "negative threshold", total: "300", threshold: "-1", reached: false, progress: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(decimal.RequireFromString(tt.total), decimal.RequireFromString(tt.threshold))
			if got.Reached != tt.reached {
				t.Fatalf("expected reached=%v, got %v", tt.reached, got.Reached)
			}
			if got.Progress != tt.progress {
				t.Fatalf("expected progress %v, got %v", tt.progress, got.Progress)
			}
		})
	}
}
