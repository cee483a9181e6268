package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"

	"mall-commission-api/internal/constant"
)

// CommissionEntry 一条佣金义务记录。终态（settled/cancelled）后不可再修改，
// 纠错只允许追加新记录，永不物理删除。
type CommissionEntry struct {
	ID              uint64               `gorm:"column:id;primaryKey" json:"id"`                                                  // 雪花ID
	OrderID         uint64               `gorm:"column:order_id;not null;index" json:"order_id"`                                  // 订单ID
	OrderItemID     uint64               `gorm:"column:order_item_id;not null;index" json:"order_item_id"`                        // 订单项ID（发货侧幂等键）
	Tier            constant.EntryTier   `gorm:"column:tier;size:10;not null" json:"tier"`                                        // 佣金层级
	BeneficiaryUID  uint64               `gorm:"column:beneficiary_uid;not null;index" json:"beneficiary_uid"`                    // 受益人ID
	Amount          decimal.Decimal      `gorm:"column:amount;type:decimal(18,4);not null" json:"amount"`                         // 金额（冲正为负）
	Status          constant.EntryStatus `gorm:"column:status;size:20;not null;index" json:"status"`                              // 状态
	RefundDeadline  time.Time            `gorm:"column:refund_deadline;not null" json:"refund_deadline"`                          // 冻结期截止，创建时一次性写入
	AvailableAt     *time.Time           `gorm:"column:available_at" json:"available_at,omitempty"`                               // 审核通过时间=可结算时间
	ApprovedBy      *uint64              `gorm:"column:approved_by" json:"approved_by,omitempty"`                                 // 审核人
	ApprovedAt      *time.Time           `gorm:"column:approved_at" json:"approved_at,omitempty"`                                 // 审核时间
	SettledAt       *time.Time           `gorm:"column:settled_at" json:"settled_at,omitempty"`                                   // 入账时间
	BatchID         *uint64              `gorm:"column:batch_id;index" json:"batch_id,omitempty"`                                 // 结算批次ID
	OriginalEntryID *uint64              `gorm:"column:original_entry_id;uniqueIndex" json:"original_entry_id,omitempty"`         // 冲正记录指向的原始记录，一条原始记录至多冲正一次
	Remark          string               `gorm:"column:remark;size:255" json:"remark"`                                            // 备注
	CreateTime      time.Time            `gorm:"column:create_time;not null" json:"create_time"`
	UpdateTime      time.Time            `gorm:"column:update_time;not null" json:"update_time"`
}

func (CommissionEntry) TableName() string {
	return "c_commission_entry"
}
