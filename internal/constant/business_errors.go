package constant

// 业务级错误码 (2xxx)

// 佣金记录相关错误码
const (
	CodeEntryNotFound       = 2000 // 佣金记录不存在，请检查记录编号
	CodeEntryIllegalState   = 2001 // 佣金记录状态不允许当前操作
	CodeEntryImmutable      = 2002 // 佣金记录已终态，禁止修改
	CodeEntryAlreadyExist   = 2003 // 该订单项佣金已生成，请勿重复提交
	CodeEntryRateMissing    = 2004 // 角色佣金费率未配置
	CodeEntryAmountInvalid  = 2005 // 佣金金额无效
	CodeEntryTierInvalid    = 2006 // 佣金层级无效
	CodeEntryConcurrentEdit = 2007 // 佣金记录并发修改冲突，请重试
)

// 价格相关错误码
const (
	CodePriceBaseMissing = 2100 // 商品基础价缺失，无法完成价格瀑布解析
	CodeProductNotFound  = 2101 // 商品不存在
	CodeSkuNotFound      = 2102 // SKU 不存在
	CodeRoleInvalid      = 2103 // 买家角色等级无效
)

// 结算相关错误码
const (
	CodeSettlementFailed     = 2200 // 结算失败，请稍后重试
	CodeSettlementProcessing = 2201 // 已有结算批次进行中，请勿重复触发
	CodeSettlementNoEntries  = 2202 // 无可结算佣金记录
	CodeBatchNotFound        = 2203 // 结算批次不存在
	CodeBalanceInsufficient  = 2204 // 账户余额不足以完成冲正扣减
	CodeBalanceNotFound      = 2205 // 受益人账户不存在
)

// 退款冲正相关错误码
const (
	CodeClawbackDuplicate = 2300 // 该佣金记录已冲正，请勿重复操作
	CodeRefundOrderOpen   = 2301 // 订单项存在未完结退款，暂不可晋升
)

// 审核相关错误码
const (
	CodeApprovalNotAllowed = 2400 // 当前状态不可审核
	CodeRejectNeedReason   = 2401 // 驳回必须填写原因
)
