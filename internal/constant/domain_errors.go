package constant

import (
	"errors"
	"fmt"
	"strings"
)

// 佣金引擎的业务错误类型。handler 层用 errors.As 映射为错误码，
// 调度器据此决定重试还是告警。

// ValidationError 计算输入缺少必填数据（基础价兜底失败等）
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// StateTransitionError 非法状态迁移
type StateTransitionError struct {
	EntryID uint64
	From    EntryStatus
	To      EntryStatus
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("illegal transition %s -> %s (entry %d)", e.From, e.To, e.EntryID)
}

// ImmutableRecordError 对终态记录的写入
type ImmutableRecordError struct {
	EntryID uint64
	Status  EntryStatus
}

func (e *ImmutableRecordError) Error() string {
	return fmt.Sprintf("entry %d is %s and immutable", e.EntryID, e.Status)
}

// ConcurrencyConflictError 锁等待超时/并发写冲突，调用方整体重试
type ConcurrencyConflictError struct {
	Op  string
	Err error
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("concurrency conflict in %s: %v", e.Op, e.Err)
}

func (e *ConcurrencyConflictError) Unwrap() error { return e.Err }

// ConfigInvariantError 配置不变量被破坏，启动即失败
type ConfigInvariantError struct {
	Reason string
}

func (e *ConfigInvariantError) Error() string {
	return "config invariant violated: " + e.Reason
}

// IsConcurrencyConflict 判定是否为并发冲突（含 MySQL 1205 锁等待 / 1213 死锁）
func IsConcurrencyConflict(err error) bool {
	if err == nil {
		return false
	}
	var cc *ConcurrencyConflictError
	if errors.As(err, &cc) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Error 1205") || strings.Contains(msg, "Error 1213") ||
		strings.Contains(msg, "Lock wait timeout") || strings.Contains(msg, "Deadlock found")
}
