package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"

	"mall-commission-api/internal/constant"
)

// SettlementBatch 一次原子结算批次。同一时刻至多一个 processing；
// completed/failed 为终态。
type SettlementBatch struct {
	ID               uint64               `gorm:"column:id;primaryKey" json:"id"`                                       // 雪花ID
	BatchNo          string               `gorm:"column:batch_no;size:32;not null;uniqueIndex" json:"batch_no"`         // SET日期-序号
	PeriodStart      time.Time            `gorm:"column:period_start;not null" json:"period_start"`                     // 统计区间起
	PeriodEnd        time.Time            `gorm:"column:period_end;not null" json:"period_end"`                         // 统计区间止
	Status           constant.BatchStatus `gorm:"column:status;size:15;not null;index" json:"status"`                   // 批次状态
	EntryCount       int                  `gorm:"column:entry_count;not null;default:0" json:"entry_count"`             // 入账记录数
	BeneficiaryCount int                  `gorm:"column:beneficiary_count;not null;default:0" json:"beneficiary_count"` // 受益人数
	TotalAmount      decimal.Decimal      `gorm:"column:total_amount;type:decimal(18,4);not null;default:0" json:"total_amount"` // 入账总额
	OperatorID       *uint64              `gorm:"column:operator_id" json:"operator_id,omitempty"`                      // 手动触发的操作人
	StartedAt        *time.Time           `gorm:"column:started_at" json:"started_at,omitempty"`
	CompletedAt      *time.Time           `gorm:"column:completed_at" json:"completed_at,omitempty"`
	ErrorMessage     string               `gorm:"column:error_message;size:500" json:"error_message"`
	CreateTime       time.Time            `gorm:"column:create_time;not null" json:"create_time"`
	UpdateTime       time.Time            `gorm:"column:update_time;not null" json:"update_time"`
}

func (SettlementBatch) TableName() string {
	return "c_settlement_batch"
}
