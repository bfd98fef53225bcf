package dto

// MoveToStoreRequest transferencia puntual del gran almacén a sala de ventas.
type MoveToStoreRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// FillItem referencia a un producto dentro del relleno por lotes.
type FillItem struct {
	ID string `json:"id"`
}

// FillRequest relleno de sala de ventas hasta el piso objetivo.
type FillRequest struct {
	Products []FillItem `json:"products"`
}

// TransferProductResponse producto con sus dos contadores de almacén.
type TransferProductResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	MainWarehouseQuantity  int    `json:"mainWarehouseQuantity"`
	SalesWarehouseQuantity int    `json:"salesWarehouseQuantity"`
	Category               string `json:"category"`
	Image                  string `json:"image"`
}

// MoveToStoreResponse resultado de una transferencia puntual.
type MoveToStoreResponse struct {
	ProductID              string `json:"productId"`
	MainWarehouseQuantity  int    `json:"mainWarehouseQuantity"`
	SalesWarehouseQuantity int    `json:"salesWarehouseQuantity"`
}
