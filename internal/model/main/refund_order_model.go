package mainmodel

import "time"

// 退款单状态（订单侧写入，本引擎只读）
const (
	RefundOpen     int8 = 0 // 退款中
	RefundApproved int8 = 1 // 退款完成
	RefundRejected int8 = 2 // 退款驳回
)

// RefundOrder 订单子系统维护的退款单。晋升步骤据此判断
// 订单项是否仍有未完结退款。
type RefundOrder struct {
	ID          uint64    `gorm:"column:id;primaryKey" json:"id"`
	OrderID     uint64    `gorm:"column:order_id;not null;index" json:"order_id"`
	OrderItemID uint64    `gorm:"column:order_item_id;not null;index" json:"order_item_id"`
	Status      int8      `gorm:"column:status;not null;index" json:"status"`
	CreateTime  time.Time `gorm:"column:create_time;not null" json:"create_time"`
	UpdateTime  time.Time `gorm:"column:update_time;not null" json:"update_time"`
}

func (RefundOrder) TableName() string {
	return "c_refund_order"
}
