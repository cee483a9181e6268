package ledger

import (
	"mall-commission-api/internal/constant"
	mainmodel "mall-commission-api/internal/model/main"
)

// 状态机迁移表。表外的一切迁移都是非法的：
//
//	frozen           -> pending_approval | cancelled
//	pending_approval -> approved         | cancelled
//	approved         -> settled          | cancelled
//	settled/cancelled 为吸收态
//
// approved -> cancelled 仅退款冲正可走（已审核未入账，资金尚未发生）。
var allowed = map[constant.EntryStatus]map[constant.EntryStatus]bool{
	constant.EntryFrozen: {
		constant.EntryPendingApproval: true,
		constant.EntryCancelled:       true,
	},
	constant.EntryPendingApproval: {
		constant.EntryApproved:  true,
		constant.EntryCancelled: true,
	},
	constant.EntryApproved: {
		constant.EntrySettled:   true,
		constant.EntryCancelled: true,
	},
}

// CanTransition 迁移是否合法
func CanTransition(from, to constant.EntryStatus) bool {
	return allowed[from][to]
}

// CheckTransition 校验迁移。终态记录返回 ImmutableRecordError，
// 其余非法迁移返回 StateTransitionError。
func CheckTransition(e *mainmodel.CommissionEntry, to constant.EntryStatus) error {
	if e.Status.Terminal() {
		return &constant.ImmutableRecordError{EntryID: e.ID, Status: e.Status}
	}
	if !CanTransition(e.Status, to) {
		return &constant.StateTransitionError{EntryID: e.ID, From: e.Status, To: to}
	}
	return nil
}
