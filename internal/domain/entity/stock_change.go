package entity

import "time"

// StockChange solicitud de cambio de stock. El llamador decide la semántica
// (cuánto cambia y cuál es el stock resultante); el ledger solo la registra.
type StockChange struct {
	ProductID      int64
	OperationType  string
	QuantityChange int
	StockAfter     int
	Memo           string
}

// StockChangeResult lo que el ledger aplicó, para que el llamador lo informe.
type StockChangeResult struct {
	ProductID      int64
	ProductName    string
	OperationType  string
	QuantityChange int
	OldStock       int
	NewStock       int
	HistoryID      int64
	RecordedAt     time.Time

	// Warning aviso de stock bajo o agotado tras el cambio; vacío si queda normal.
	Warning string
}

// DeleteResult resultado informativo de borrar un producto.
type DeleteResult struct {
	ProductID      int64
	ProductName    string
	HistoryRemoved int64
}

// StockStatistics resumen de operaciones de un producto.
// FirstOperation y LastOperation son nil cuando no hay historial.
type StockStatistics struct {
	TotalOperations int
	PurchaseCount   int
	UseCount        int
	AdjustCount     int
	TotalPurchased  int
	TotalUsed       int
	FirstOperation  *time.Time
	LastOperation   *time.Time
}
