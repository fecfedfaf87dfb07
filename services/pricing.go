package services

import (
	"fmt"
	"sort"

	"github.com/autoservice/garage-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceScale is the number of fractional digits kept for money
const PriceScale = 2

// LineInput is one requested (service, count) pair
type LineInput struct {
	ServiceID uint `json:"serviceId"`
	Count     int  `json:"count"`
}

// PricedLines is the result of resolving a line-item set against the catalog
type PricedLines struct {
	Lines []models.OrderLine
	Total decimal.Decimal
}

// normalizeCount treats a missing or non-positive count as one unit
func normalizeCount(count int) int {
	if count <= 0 {
		return 1
	}
	return count
}

// Total sums price × count over lines. Lines whose service is missing from prices count as zero.
func Total(prices map[uint]decimal.Decimal, lines []models.OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		price, ok := prices[line.ServiceID]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(normalizeCount(line.Count)))))
	}
	return total.Round(PriceScale)
}

// PriceLines resolves every referenced service in one query and computes the order total.
// It never writes; an unknown or repeated service id fails the whole set.
func PriceLines(db *gorm.DB, input []LineInput) (*PricedLines, error) {
	if len(input) == 0 {
		return &PricedLines{Lines: []models.OrderLine{}, Total: decimal.Zero}, nil
	}

	lines := make([]models.OrderLine, 0, len(input))
	ids := make([]uint, 0, len(input))
	seen := make(map[uint]bool, len(input))
	for _, in := range input {
		if in.ServiceID == 0 {
			return nil, ValidationError("VALIDATION_ERROR", "serviceId is required for every service line")
		}
		if seen[in.ServiceID] {
			return nil, ValidationError("DUPLICATE_SERVICE", fmt.Sprintf("Service %d is listed more than once", in.ServiceID))
		}
		seen[in.ServiceID] = true
		ids = append(ids, in.ServiceID)
		lines = append(lines, models.OrderLine{ServiceID: in.ServiceID, Count: normalizeCount(in.Count)})
	}

	var found []models.Service
	if err := db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, InternalError("Failed to load services", err)
	}

	if len(found) != len(ids) {
		return nil, &AppError{
			Kind:    KindValidation,
			Code:    "SERVICE_NOT_FOUND",
			Message: fmt.Sprintf("Services not found: %v", missingIDs(ids, found)),
		}
	}

	prices := make(map[uint]decimal.Decimal, len(found))
	for _, svc := range found {
		prices[svc.ID] = svc.Price
	}

	return &PricedLines{Lines: lines, Total: Total(prices, lines)}, nil
}

func missingIDs(requested []uint, found []models.Service) []uint {
	present := make(map[uint]bool, len(found))
	for _, svc := range found {
		present[svc.ID] = true
	}
	var missing []uint
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}
