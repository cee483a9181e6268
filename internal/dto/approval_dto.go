package dto

// ApproveReq 审核通过请求（单条或批量）
type ApproveReq struct {
	IDs      []uint64 `json:"ids" binding:"required,min=1"`
	Operator uint64   `json:"operator" binding:"required"`
}

// RejectReq 审核驳回请求，必须携带原因
type RejectReq struct {
	IDs      []uint64 `json:"ids" binding:"required,min=1"`
	Operator uint64   `json:"operator" binding:"required"`
	Reason   string   `json:"reason" binding:"required"`
}

// BatchOpFailure 批量操作中失败的单条明细
type BatchOpFailure struct {
	ID   string `json:"id"`
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// BatchOpResult 批量审核结果。逐条独立事务，互不回滚
type BatchOpResult struct {
	Succeeded []string         `json:"succeeded"`
	Failed    []BatchOpFailure `json:"failed"`
}
