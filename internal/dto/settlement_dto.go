package dto

import "time"

// BatchVO 结算批次视图
type BatchVO struct {
	ID               string     `json:"id"`
	BatchNo          string     `json:"batch_no"`
	PeriodStart      time.Time  `json:"period_start"`
	PeriodEnd        time.Time  `json:"period_end"`
	Status           string     `json:"status"`
	EntryCount       int        `json:"entry_count"`
	BeneficiaryCount int        `json:"beneficiary_count"`
	TotalAmount      string     `json:"total_amount"`
	OperatorID       *uint64    `json:"operator_id,omitempty"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	ErrorMessage     string     `json:"error_message,omitempty"`
}

// ManualSettleReq 手动触发结算
type ManualSettleReq struct {
	Operator uint64 `json:"operator" binding:"required"`
}
