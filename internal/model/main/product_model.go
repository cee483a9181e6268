package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品主档。分层价列可为 NULL，NULL 表示该档位未配置
// （0 是合法价格，不能当作未配置处理）。
type Product struct {
	ID          uint64           `gorm:"column:id;primaryKey" json:"id"`
	Title       string           `gorm:"column:title;size:120;not null" json:"title"`
	Price       *decimal.Decimal `gorm:"column:price;type:decimal(18,4)" json:"price"`               // 基础价
	MemberPrice *decimal.Decimal `gorm:"column:member_price;type:decimal(18,4)" json:"member_price"` // 会员价
	LeaderPrice *decimal.Decimal `gorm:"column:leader_price;type:decimal(18,4)" json:"leader_price"` // 团长价
	AgentPrice  *decimal.Decimal `gorm:"column:agent_price;type:decimal(18,4)" json:"agent_price"`   // 代理价
	Status      int8             `gorm:"column:status;not null;default:1" json:"status"`
	CreateTime  time.Time        `gorm:"column:create_time;not null" json:"create_time"`
	UpdateTime  time.Time        `gorm:"column:update_time;not null" json:"update_time"`
}

func (Product) TableName() string {
	return "c_product"
}

// ProductSku SKU 档。与商品同构的价格瀑布字段。
type ProductSku struct {
	ID          uint64           `gorm:"column:id;primaryKey" json:"id"`
	ProductID   uint64           `gorm:"column:product_id;not null;index" json:"product_id"`
	SkuName     string           `gorm:"column:sku_name;size:120;not null" json:"sku_name"`
	Price       *decimal.Decimal `gorm:"column:price;type:decimal(18,4)" json:"price"`
	MemberPrice *decimal.Decimal `gorm:"column:member_price;type:decimal(18,4)" json:"member_price"`
	LeaderPrice *decimal.Decimal `gorm:"column:leader_price;type:decimal(18,4)" json:"leader_price"`
	AgentPrice  *decimal.Decimal `gorm:"column:agent_price;type:decimal(18,4)" json:"agent_price"`
	Status      int8             `gorm:"column:status;not null;default:1" json:"status"`
	CreateTime  time.Time        `gorm:"column:create_time;not null" json:"create_time"`
	UpdateTime  time.Time        `gorm:"column:update_time;not null" json:"update_time"`
}

func (ProductSku) TableName() string {
	return "c_product_sku"
}
