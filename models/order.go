package models

import "time"

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerName  string      `gorm:"not null" json:"customer_name"`
	CustomerEmail string      `gorm:"not null" json:"customer_email"`
	TotalAmount   float64     `gorm:"not null" json:"total_amount"`
	OrderDate     time.Time   `gorm:"autoCreateTime" json:"order_date"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem captures the catalog price at checkout time. Order totals are
// frozen at creation and never recomputed from current product prices.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
