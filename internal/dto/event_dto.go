package dto

// CommissionStateChangedEvent 状态机每次迁移对外发布的事件。
// 通知投递由独立的消费者完成，状态机本身不关心送达。
type CommissionStateChangedEvent struct {
	EntryID        uint64 `json:"entry_id"`
	OrderID        uint64 `json:"order_id"`
	OrderItemID    uint64 `json:"order_item_id"`
	BeneficiaryUID uint64 `json:"beneficiary_uid"`
	Tier           string `json:"tier"`
	From           string `json:"from"`
	To             string `json:"to"`
	Amount         string `json:"amount"`
	Remark         string `json:"remark,omitempty"`
	Ts             int64  `json:"ts"`
}

// SettlementCompletedEvent 批次结算完成事件
type SettlementCompletedEvent struct {
	BatchID          uint64 `json:"batch_id"`
	BatchNo          string `json:"batch_no"`
	EntryCount       int    `json:"entry_count"`
	BeneficiaryCount int    `json:"beneficiary_count"`
	TotalAmount      string `json:"total_amount"`
	Ts               int64  `json:"ts"`
}

// SettlementFailedEvent 批次结算失败事件（运维告警用）
type SettlementFailedEvent struct {
	BatchID uint64 `json:"batch_id"`
	BatchNo string `json:"batch_no"`
	Error   string `json:"error"`
	Ts      int64  `json:"ts"`
}
