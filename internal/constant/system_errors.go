package constant

// 系统级错误码 (1xxx)

const (
	CodeSuccess            = 0    // 操作成功
	CodeSystemError        = 1000 // 系统内部错误
	CodeDatabaseError      = 1001 // 数据库操作失败，包括连接失败、查询错误、事务异常等
	CodeRedisError         = 1002 // Redis缓存服务错误
	CodeInternalError      = 1003 // 内部服务错误
	CodeServiceUnavailable = 1004 // 服务暂时不可用
	CodeTimeout            = 1005 // 请求处理超时
)

// 参数错误码
const (
	CodeInvalidParams    = 1100 // 参数格式错误
	CodeMissingParams    = 1101 // 缺少必要参数
	CodeDuplicateRequest = 1105 // 重复请求检测，相同请求在短时间内被重复提交
)

// 认证授权错误码
const (
	CodeUnauthorized = 1200 // 未授权访问，请求缺少有效的身份认证信息
	CodeForbidden    = 1201 // 禁止访问，身份合法但权限不足
)
