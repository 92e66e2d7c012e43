package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de compras: productos agotados o con stock bajo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos en o bajo su stock mínimo con la cantidad
// sugerida de compra, ordenados por urgencia: agotados primero, luego mayor déficit, luego nombre.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		status := p.StockStatus()
		if status == entity.StockStatusNormal {
			continue
		}
		ideal := IdealStock(p.MinStock())
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID(),
			ProductName:       p.Name(),
			Category:          p.Category(),
			PurchaseLocation:  p.PurchaseLocation(),
			StockStatus:       status,
			CurrentStock:      p.CurrentStock(),
			MinStock:          p.MinStock(),
			IdealStock:        ideal,
			SuggestedOrderQty: max(ideal-p.CurrentStock(), 0),
			Expired:           p.IsExpired(),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		aOut := a.StockStatus == entity.StockStatusOutOfStock
		bOut := b.StockStatus == entity.StockStatusOutOfStock
		if aOut != bOut {
			return aOut
		}
		if a.SuggestedOrderQty != b.SuggestedOrderQty {
			return a.SuggestedOrderQty > b.SuggestedOrderQty
		}
		return a.ProductName < b.ProductName
	})

	// 1 = más urgente
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// IdealStock nivel al que conviene reponer: 1.5 veces el mínimo (redondeado hacia arriba),
// y siempre por encima del mínimo para que el producto salga del estado de stock bajo.
func IdealStock(minStock int) int {
	ideal := (minStock*3 + 1) / 2
	return max(ideal, minStock+1)
}
