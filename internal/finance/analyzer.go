package finance

import (
	"sort"

	"example.com/goal-tracker/backend/internal/models"
)

type CategoryStat struct {
	Category         string  `json:"category"`
	Amount           float64 `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
}

type OtherCategories struct {
	Amount        float64 `json:"amount"`
	Percentage    float64 `json:"percentage"`
	CategoryCount int     `json:"category_count"`
}

type SpendingAnalysis struct {
	TotalExpenses          float64         `json:"total_expenses"`
	TopCategories          []CategoryStat  `json:"top_categories"`
	OtherCategories        OtherCategories `json:"other_categories"`
	CategoryCount          int             `json:"category_count"`
	AverageTransactionSize float64         `json:"average_transaction_size"`
}

// AnalyzeSpending группирует расходы по категориям и возвращает топ и остаток.
// Средний чек считается по всем входным транзакциям, не только по расходам.
func AnalyzeSpending(transactions []models.Transaction, topN int) SpendingAnalysis {
	if topN < 0 {
		topN = 0
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount
		counts[t.Category]++
	}

	// Стабильная сортировка сохраняет порядок первого появления при равных суммах.
	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]] > sums[order[j]]
	})

	var total float64
	for _, category := range order {
		total += sums[category]
	}

	cut := topN
	if cut > len(order) {
		cut = len(order)
	}

	top := make([]CategoryStat, 0, cut)
	for _, category := range order[:cut] {
		stat := CategoryStat{
			Category:         category,
			Amount:           sums[category],
			TransactionCount: counts[category],
		}
		if total > 0 {
			stat.Percentage = sums[category] / total * 100
		}
		top = append(top, stat)
	}

	other := OtherCategories{CategoryCount: len(order) - cut}
	for _, category := range order[cut:] {
		other.Amount += sums[category]
	}
	if total > 0 {
		other.Percentage = other.Amount / total * 100
	}

	analysis := SpendingAnalysis{
		TotalExpenses:   total,
		TopCategories:   top,
		OtherCategories: other,
		CategoryCount:   len(order),
	}

	if len(transactions) > 0 {
		analysis.AverageTransactionSize = total / float64(len(transactions))
	}

	return analysis
}
