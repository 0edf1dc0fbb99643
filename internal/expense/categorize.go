package expense

import (
	"strings"

	"example.com/finlit-quest/backend/internal/models"
)

// Keyword-маппинг детерминированной категоризации банковских транзакций.
// Порядок проверки фиксирован, чтобы одна и та же транзакция всегда
// попадала в одну и ту же категорию.
var categoryKeywords = []struct {
	category models.ExpenseCategory
	keywords []string
}{
	{models.CategoryHousing, []string{"rent", "mortgage", "landlord", "apartment", "hoa"}},
	{models.CategoryTransport, []string{"uber", "lyft", "taxi", "transit", "metro", "gas station", "fuel", "parking"}},
	{models.CategoryFood, []string{"restaurant", "cafe", "coffee", "grocery", "supermarket", "mcdonald", "starbucks", "doordash", "delivery"}},
	{models.CategoryEntertainment, []string{"netflix", "spotify", "cinema", "movie", "steam", "playstation", "concert", "hulu"}},
	{models.CategoryShopping, []string{"amazon", "target", "walmart", "mall", "clothing", "shoe", "electronics"}},
	{models.CategoryBills, []string{"electric", "water", "internet", "phone", "insurance", "utility", "subscription"}},
}

// Categorize относит транзакцию к категории по продавцу и описанию.
// Без совпадений возвращает категорию other.
func Categorize(merchant, description string) models.ExpenseCategory {
	haystack := strings.ToLower(merchant + " " + description)

	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(haystack, keyword) {
				return entry.category
			}
		}
	}

	return models.CategoryOther
}
