package settlement

import (
	"time"

	mainmodel "mall-commission-api/internal/model/main"
)

// RefundChecker 订单侧提供的退款状态查询。晋升步骤据此跳过
// 仍有未完结退款的订单项。
type RefundChecker interface {
	HasOpenRefund(orderItemID uint64) (bool, error)
}

// Store 调度器的持久化端口。CommitPlan 必须整体提交或整体回滚，
// 不允许跨受益人部分入账。
type Store interface {
	// StaleProcessingBatch 崩溃遗留的 processing 批次
	StaleProcessingBatch() (*mainmodel.SettlementBatch, error)
	// MarkBatchFailed 批次置失败（终态），其记录保持 approved
	MarkBatchFailed(id uint64, msg string) error
	// PromoteDue 晋升到期且无未完结退款的 frozen 记录，返回晋升成功的记录
	PromoteDue(now time.Time, limit int) ([]mainmodel.CommissionEntry, error)
	// ApprovedItems 全部待结算记录投影
	ApprovedItems() ([]Item, error)
	// CreateBatch 新建批次并置 processing
	CreateBatch(now time.Time, periodStart time.Time, operator *uint64) (*mainmodel.SettlementBatch, error)
	// CommitPlan 单事务执行入账计划并把批次置 completed
	CommitPlan(batch *mainmodel.SettlementBatch, plan Plan, now time.Time) error
}
