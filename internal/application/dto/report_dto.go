package dto

// DeliveryResponse resultado de entregar un reporte.
type DeliveryResponse struct {
	Delivery string `json:"delivery"`
	Type     string `json:"type"`
	Format   string `json:"format"`
	Bytes    int    `json:"bytes"`
}
