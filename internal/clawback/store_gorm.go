package clawback

import (
	"time"

	"gorm.io/gorm"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dal"
	"mall-commission-api/internal/dao"
	"mall-commission-api/internal/idgen"
	"mall-commission-api/internal/ledger"
	mainmodel "mall-commission-api/internal/model/main"
)

// GormStore Store 的 MySQL 实现
type GormStore struct {
	entryDao   *dao.CommissionDao
	balanceDao *dao.BalanceDao
	ledger     *ledger.Ledger
}

func NewGormStore(entryDao *dao.CommissionDao, balanceDao *dao.BalanceDao, lg *ledger.Ledger) *GormStore {
	return &GormStore{entryDao: entryDao, balanceDao: balanceDao, ledger: lg}
}

func (s *GormStore) ListByOrderItem(orderItemID uint64) ([]mainmodel.CommissionEntry, error) {
	return s.entryDao.ListByOrderItem(orderItemID)
}

// Apply 行锁后处置。列表读取与加锁之间状态可能已被调度器或人工
// 审核改过，以锁内重读的状态为准重新决策。
func (s *GormStore) Apply(entryID uint64, reason string) (*mainmodel.CommissionEntry, *Transition, error) {
	var clawback *mainmodel.CommissionEntry
	var tr *Transition

	err := dal.MainDB.Transaction(func(tx *gorm.DB) error {
		locked, err := s.entryDao.GetByIDForUpdate(tx, entryID)
		if err != nil {
			return err
		}
		if locked == nil {
			return constant.NewError(constant.CodeEntryNotFound)
		}

		switch Decide(locked.Status) {
		case ActionSkip:
			return nil

		case ActionOffset:
			existing, err := s.entryDao.FindClawbackByOriginal(tx, locked.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				clawback = existing
				return nil
			}
			now := time.Now()
			origID := locked.ID
			settledAt := now
			cb := mainmodel.CommissionEntry{
				ID:              idgen.NewFrom("entry"),
				OrderID:         locked.OrderID,
				OrderItemID:     locked.OrderItemID,
				Tier:            constant.TierClawback,
				BeneficiaryUID:  locked.BeneficiaryUID,
				Amount:          locked.Amount.Abs().Neg(),
				Status:          constant.EntrySettled,
				RefundDeadline:  now,
				SettledAt:       &settledAt,
				OriginalEntryID: &origID,
				Remark:          reason,
				CreateTime:      now,
				UpdateTime:      now,
			}
			if err := tx.Create(&cb).Error; err != nil {
				return err
			}
			if err := s.balanceDao.Change(tx, dao.ChangeReq{
				UID:      locked.BeneficiaryUID,
				Delta:    cb.Amount,
				Type:     constant.MoneyLogClawback,
				EntryID:  locked.ID,
				Operator: "clawback",
				Remark:   reason,
			}); err != nil {
				return err
			}
			clawback = &cb
			return nil

		default: // ActionCancel
			from := locked.Status
			if err := s.ledger.Apply(tx, locked, constant.EntryCancelled, map[string]any{
				"remark": reason,
			}); err != nil {
				return err
			}
			tr = &Transition{Entry: *locked, From: from}
			return nil
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return clawback, tr, nil
}
