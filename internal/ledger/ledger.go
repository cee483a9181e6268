package ledger

import (
	"time"

	"gorm.io/gorm"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dto"
	"mall-commission-api/internal/event"
	mainmodel "mall-commission-api/internal/model/main"
)

// Ledger 佣金台账。所有状态迁移都经由 Apply 执行：
// 带状态前置条件的守卫更新，并发写丢失竞争的一方拿到
// ConcurrencyConflictError 而不是覆盖对方。
type Ledger struct {
	pub event.Publisher
}

func New(pub event.Publisher) *Ledger {
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return &Ledger{pub: pub}
}

// Apply 在事务 tx 内把 e 迁移到 to，set 为随迁移写入的附加列。
// 成功后同步修改 e 的内存状态；调用方提交事务后用 Emit 发布事件。
func (l *Ledger) Apply(tx *gorm.DB, e *mainmodel.CommissionEntry, to constant.EntryStatus, set map[string]any) error {
	if err := CheckTransition(e, to); err != nil {
		return err
	}
	updates := map[string]any{
		"status":      to,
		"update_time": time.Now(),
	}
	for k, v := range set {
		updates[k] = v
	}
	res := tx.Model(&mainmodel.CommissionEntry{}).
		Where("id = ? AND status = ?", e.ID, e.Status).
		Updates(updates)
	if res.Error != nil {
		if constant.IsConcurrencyConflict(res.Error) {
			return &constant.ConcurrencyConflictError{Op: "ledger.Apply", Err: res.Error}
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 状态前置条件失效：另一写者先完成了迁移
		return &constant.ConcurrencyConflictError{Op: "ledger.Apply", Err: gorm.ErrRecordNotFound}
	}
	e.Status = to
	e.UpdateTime = time.Now()
	return nil
}

// Emit 发布状态迁移事件。事务提交后调用，投递失败只记日志，
// 不影响已提交的台账。
func (l *Ledger) Emit(e *mainmodel.CommissionEntry, from, to constant.EntryStatus, remark string) {
	_ = l.pub.Publish(event.KeyStateChanged, dto.CommissionStateChangedEvent{
		EntryID:        e.ID,
		OrderID:        e.OrderID,
		OrderItemID:    e.OrderItemID,
		BeneficiaryUID: e.BeneficiaryUID,
		Tier:           string(e.Tier),
		From:           string(from),
		To:             string(to),
		Amount:         e.Amount.StringFixed(2),
		Remark:         remark,
		Ts:             time.Now().Unix(),
	})
}
