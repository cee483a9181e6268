package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:            {"操作成功", "Success"},
	CodeSystemError:        {"系统错误", "System error"},
	CodeDatabaseError:      {"数据库错误", "Database error"},
	CodeRedisError:         {"缓存服务错误", "Cache error"},
	CodeInternalError:      {"内部服务错误", "Internal error"},
	CodeServiceUnavailable: {"服务暂时不可用", "Service unavailable"},
	CodeTimeout:            {"请求处理超时", "Timeout"},

	// 参数错误
	CodeInvalidParams:    {"参数格式错误", "Invalid params"},
	CodeMissingParams:    {"缺少必要参数", "Missing params"},
	CodeDuplicateRequest: {"重复请求", "Duplicate request"},

	// 认证授权
	CodeUnauthorized: {"未授权访问", "Unauthorized"},
	CodeForbidden:    {"权限不足", "Forbidden"},

	// 佣金记录
	CodeEntryNotFound:       {"佣金记录不存在", "Commission entry not found"},
	CodeEntryIllegalState:   {"佣金记录状态不允许当前操作", "Illegal entry state for this operation"},
	CodeEntryImmutable:      {"佣金记录已终态，禁止修改", "Entry is terminal and immutable"},
	CodeEntryAlreadyExist:   {"该订单项佣金已生成", "Commission already recorded for this item"},
	CodeEntryRateMissing:    {"角色佣金费率未配置", "Commission rate not configured for role"},
	CodeEntryAmountInvalid:  {"佣金金额无效", "Invalid commission amount"},
	CodeEntryTierInvalid:    {"佣金层级无效", "Invalid commission tier"},
	CodeEntryConcurrentEdit: {"佣金记录并发修改冲突", "Concurrent modification conflict"},

	// 价格
	CodePriceBaseMissing: {"商品基础价缺失", "Base price missing"},
	CodeProductNotFound:  {"商品不存在", "Product not found"},
	CodeSkuNotFound:      {"SKU不存在", "SKU not found"},
	CodeRoleInvalid:      {"买家角色等级无效", "Invalid buyer role level"},

	// 结算
	CodeSettlementFailed:     {"结算失败", "Settlement failed"},
	CodeSettlementProcessing: {"已有结算批次进行中", "A settlement batch is already processing"},
	CodeSettlementNoEntries:  {"无可结算佣金记录", "No approved entries to settle"},
	CodeBatchNotFound:        {"结算批次不存在", "Settlement batch not found"},
	CodeBalanceInsufficient:  {"账户余额不足", "Balance insufficient"},
	CodeBalanceNotFound:      {"受益人账户不存在", "Beneficiary account not found"},

	// 冲正/退款
	CodeClawbackDuplicate: {"该佣金记录已冲正", "Entry already clawed back"},
	CodeRefundOrderOpen:   {"订单项存在未完结退款", "Open refund on order item"},

	// 审核
	CodeApprovalNotAllowed: {"当前状态不可审核", "Entry not approvable in current state"},
	CodeRejectNeedReason:   {"驳回必须填写原因", "Reject reason required"},
}
