package dto

import "time"

// Party 已解析的分佣链路成员（买家/直接上级/间接上级）。
// 推荐关系由订单侧解析后传入，本引擎不做关系计算。
type Party struct {
	UID       uint64 `json:"uid" binding:"required"`
	RoleLevel int8   `json:"role_level"`
}

// ShipmentCommissionReq 发货确认时订单侧调用，按订单项生成佣金。
// order_item_id 为幂等键，重复调用返回已生成的记录。
type ShipmentCommissionReq struct {
	OrderID     uint64    `json:"order_id" binding:"required"`
	OrderItemID uint64    `json:"order_item_id" binding:"required"`
	ProductID   uint64    `json:"product_id" binding:"required"`
	SkuID       *uint64   `json:"sku_id,omitempty"`
	Quantity    int32     `json:"quantity" binding:"required,gt=0"`
	Buyer       Party     `json:"buyer" binding:"required"`
	Parent      *Party    `json:"parent,omitempty"`
	Grandparent *Party    `json:"grandparent,omitempty"`
	ShippedAt   time.Time `json:"shipped_at"`
	Remark      string    `json:"remark"`
}

// ReverseCommissionReq 退款审批通过时订单侧调用
type ReverseCommissionReq struct {
	OrderItemID uint64 `json:"order_item_id" binding:"required"`
	Reason      string `json:"reason"`
}

// EntryVO 佣金记录视图
type EntryVO struct {
	ID              string     `json:"id"`
	OrderID         string     `json:"order_id"`
	OrderItemID     string     `json:"order_item_id"`
	Tier            string     `json:"tier"`
	BeneficiaryUID  uint64     `json:"beneficiary_uid"`
	Amount          string     `json:"amount"`
	Status          string     `json:"status"`
	RefundDeadline  time.Time  `json:"refund_deadline"`
	AvailableAt     *time.Time `json:"available_at,omitempty"`
	ApprovedBy      *uint64    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	SettledAt       *time.Time `json:"settled_at,omitempty"`
	OriginalEntryID string     `json:"original_entry_id,omitempty"`
	Remark          string     `json:"remark,omitempty"`
	CreateTime      time.Time  `json:"create_time"`
}

// SummaryVO 受益人佣金汇总（缓存读穿）
type SummaryVO struct {
	UID      uint64 `json:"uid"`
	Frozen   string `json:"frozen"`
	Pending  string `json:"pending"`
	Approved string `json:"approved"`
	Settled  string `json:"settled"`
	Balance  string `json:"balance"`
}
