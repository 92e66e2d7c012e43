package entity

import "github.com/shopspring/decimal"

// SampleProducts productos de ejemplo para poblar un inventario vacío (uno normal, uno bajo, uno agotado).
func SampleProducts() []*Product {
	return []*Product{
		NewProduct(ProductFields{
			Name: "Papel higiénico", Brand: "Familia", Size: "12 rollos", Category: "Aseo",
			CurrentStock: 3, MinStock: 2, PurchaseLocation: "Droguería",
			Price: decimal.NewFromInt(298), StorageLocation: "Baño",
		}),
		NewProduct(ProductFields{
			Name: "Lavaloza", Brand: "Axion", Size: "400 ml", Category: "Detergentes",
			CurrentStock: 1, MinStock: 1, PurchaseLocation: "Supermercado",
			Price: decimal.NewFromInt(158), StorageLocation: "Cocina",
		}),
		NewProduct(ProductFields{
			Name: "Champú", Brand: "Pantene", Size: "400 ml", Category: "Aseo",
			CurrentStock: 0, MinStock: 1, PurchaseLocation: "Droguería",
			Price: decimal.NewFromInt(698), StorageLocation: "Baño",
		}),
	}
}
