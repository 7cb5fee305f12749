package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
type Product struct {
	ID            int             `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"type:varchar(100)"`
	Brand         string          `json:"brand" gorm:"type:varchar(100)"`
	Category      string          `json:"category" gorm:"type:varchar(100)"`
	Description   string          `json:"description" gorm:"type:varchar(500)"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(16,2)"`
	ImageFileName string          `json:"image_file_name" gorm:"type:varchar(100)"`
	CreatedAt     time.Time       `json:"created_at"`
}
