package clawback

import (
	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/ledger"
	"mall-commission-api/internal/logger"
	mainmodel "mall-commission-api/internal/model/main"
)

// Action 单条记录的冲正处置
type Action int

const (
	ActionSkip   Action = iota // 已取消，幂等跳过
	ActionCancel               // 资金未发生，直接取消，不留冲抵行
	ActionOffset               // 已入账，追加负数冲正行并扣减余额
)

// Decide 按记录状态给出处置。ActionOffset 是整个引擎唯一会减少
// 余额的路径。
func Decide(status constant.EntryStatus) Action {
	switch status {
	case constant.EntryCancelled:
		return ActionSkip
	case constant.EntrySettled:
		return ActionOffset
	default:
		// frozen / pending_approval / approved
		return ActionCancel
	}
}

// Transition 取消动作的迁移结果，事务提交后发布事件用
type Transition struct {
	Entry mainmodel.CommissionEntry
	From  constant.EntryStatus
}

// Store 冲正的持久化端口。Apply 行锁重读记录，按 Decide 的结果在
// 单事务内执行处置：ActionOffset 返回冲正行（重复调用返回已存在
// 的那条），ActionCancel 返回迁移结果，ActionSkip 两者皆空。
type Store interface {
	ListByOrderItem(orderItemID uint64) ([]mainmodel.CommissionEntry, error)
	Apply(entryID uint64, reason string) (*mainmodel.CommissionEntry, *Transition, error)
}

// Engine 退款冲正
type Engine struct {
	store  Store
	ledger *ledger.Ledger
}

func New(store Store, lg *ledger.Ledger) *Engine {
	return &Engine{store: store, ledger: lg}
}

// Reverse 冲正某订单项的全部佣金记录。逐条独立事务：单条失败
// 不阻塞其余记录，失败的留给重试。重复调用幂等。
func (e *Engine) Reverse(orderItemID uint64, reason string) ([]mainmodel.CommissionEntry, error) {
	entries, err := e.store.ListByOrderItem(orderItemID)
	if err != nil {
		return nil, err
	}

	var clawbacks []mainmodel.CommissionEntry
	var firstErr error
	for i := range entries {
		cb, tr, err := e.store.Apply(entries[i].ID, reason)
		if err != nil {
			logger.Ledger.Errorf("冲正失败 entry=%d item=%d: %v", entries[i].ID, orderItemID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if tr != nil {
			e.ledger.Emit(&tr.Entry, tr.From, constant.EntryCancelled, reason)
		}
		if cb != nil {
			clawbacks = append(clawbacks, *cb)
		}
	}
	return clawbacks, firstErr
}
