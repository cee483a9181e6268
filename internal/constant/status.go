package constant

// EntryStatus 佣金记录状态。取值写入审计库，不可改名
type EntryStatus string

const (
	EntryFrozen          EntryStatus = "frozen"           // 冻结期内
	EntryPendingApproval EntryStatus = "pending_approval" // 过冻结期，待审核
	EntryApproved        EntryStatus = "approved"         // 审核通过，待结算
	EntrySettled         EntryStatus = "settled"          // 已入账（终态）
	EntryCancelled       EntryStatus = "cancelled"        // 已取消（终态）
)

// Terminal 终态记录不可再变更
func (s EntryStatus) Terminal() bool {
	return s == EntrySettled || s == EntryCancelled
}

// EntryTier 佣金层级
type EntryTier string

const (
	TierSelf     EntryTier = "self"     // 买家自返
	TierDirect   EntryTier = "direct"   // 直接上级
	TierIndirect EntryTier = "indirect" // 间接上级
	TierClawback EntryTier = "clawback" // 退款冲正（负数）
)

// BatchStatus 结算批次状态
type BatchStatus string

const (
	BatchPending    BatchStatus = "pending"
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
	BatchFailed     BatchStatus = "failed"
)

// MoneyLogType 资金流水类型
const (
	MoneyLogSettle   int8 = 1 // 批次结算入账
	MoneyLogClawback int8 = 2 // 退款冲正扣减
)
