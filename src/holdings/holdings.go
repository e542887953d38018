package holdings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/username/portfoliopulse/backend/src/models"
)

// Load reads the immutable holdings list from a JSON file.
// Each holding's investment is recomputed from purchase price and quantity,
// so a stale value in the file can never leak into the pipeline.
func Load(path string) ([]models.Holding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings file %s: %w", path, err)
	}

	var loaded []models.Holding
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse holdings file %s: %w", path, err)
	}

	for i := range loaded {
		h := &loaded[i]
		if h.ID == "" {
			return nil, fmt.Errorf("holding %d: id is required", i)
		}
		if h.PurchasePrice <= 0 {
			return nil, fmt.Errorf("holding %s: purchase price must be positive, got %v", h.ID, h.PurchasePrice)
		}
		if h.Quantity <= 0 {
			return nil, fmt.Errorf("holding %s: quantity must be positive, got %d", h.ID, h.Quantity)
		}
		h.Investment = h.PurchasePrice * float64(h.Quantity)
	}
	return loaded, nil
}
