package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyLog 资金流水，按月分表（c_money_log_YYYYMM_pN），只追加不更新。
// 每条记录携带变更前后余额，用于对账。
type MoneyLog struct {
	ID         uint64          `gorm:"column:id;primaryKey" json:"id"`                                        // 雪花ID
	UID        uint64          `gorm:"column:uid;not null;index" json:"uid"`                                  // 用户ID
	EntryID    uint64          `gorm:"column:entry_id;not null;index" json:"entry_id"`                        // 关联佣金记录（批次入账时为组内首条）
	BatchNo    string          `gorm:"column:batch_no;size:32" json:"batch_no"`                               // 结算批次号，冲正为空
	Money      decimal.Decimal `gorm:"column:money;type:decimal(18,4);not null" json:"money"`                 // 变更金额（冲正为负）
	Type       int8            `gorm:"column:type;not null" json:"type"`                                      // 1=结算入账 2=冲正扣减
	Operator   string          `gorm:"column:operator;size:32;not null" json:"operator"`                      // 操作者
	OldBalance decimal.Decimal `gorm:"column:old_balance;type:decimal(18,4);not null" json:"old_balance"`     // 原始余额
	Balance    decimal.Decimal `gorm:"column:balance;type:decimal(18,4);not null" json:"balance"`             // 变化后余额
	Remark     string          `gorm:"column:remark;size:100" json:"remark"`                                  // 备注
	CreateTime time.Time       `gorm:"column:create_time;not null" json:"create_time"`
}
