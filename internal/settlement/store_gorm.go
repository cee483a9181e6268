package settlement

import (
	"time"

	"gorm.io/gorm"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dal"
	"mall-commission-api/internal/dao"
	"mall-commission-api/internal/idgen"
	"mall-commission-api/internal/ledger"
	"mall-commission-api/internal/logger"
	mainmodel "mall-commission-api/internal/model/main"
)

// GormStore Store 的 MySQL 实现
type GormStore struct {
	entryDao   *dao.CommissionDao
	batchDao   *dao.BatchDao
	balanceDao *dao.BalanceDao
	refunds    RefundChecker
	ledger     *ledger.Ledger
}

func NewGormStore(entryDao *dao.CommissionDao, batchDao *dao.BatchDao,
	balanceDao *dao.BalanceDao, refunds RefundChecker, lg *ledger.Ledger) *GormStore {
	return &GormStore{
		entryDao:   entryDao,
		batchDao:   batchDao,
		balanceDao: balanceDao,
		refunds:    refunds,
		ledger:     lg,
	}
}

func (s *GormStore) StaleProcessingBatch() (*mainmodel.SettlementBatch, error) {
	return s.batchDao.FindProcessing()
}

func (s *GormStore) MarkBatchFailed(id uint64, msg string) error {
	return s.batchDao.MarkFailed(id, msg)
}

// PromoteDue 单条守卫更新即原子，无需外层事务；
// 存在未完结退款的订单项留在 frozen，等退款单完结后再晋升。
func (s *GormStore) PromoteDue(now time.Time, limit int) ([]mainmodel.CommissionEntry, error) {
	due, err := s.entryDao.FindFrozenDue(now, limit)
	if err != nil {
		return nil, err
	}
	var promoted []mainmodel.CommissionEntry
	for i := range due {
		entry := &due[i]
		open, err := s.refunds.HasOpenRefund(entry.OrderItemID)
		if err != nil {
			logger.Settlement.Errorf("退款状态查询失败 item=%d: %v", entry.OrderItemID, err)
			continue
		}
		if open {
			continue
		}
		if err := s.ledger.Apply(dal.MainDB, entry, constant.EntryPendingApproval, nil); err != nil {
			// 并发冲突（通常是同订单项刚被冲正）跳过，下轮再看
			logger.Settlement.Warnf("晋升跳过 entry=%d: %v", entry.ID, err)
			continue
		}
		promoted = append(promoted, *entry)
	}
	return promoted, nil
}

func (s *GormStore) ApprovedItems() ([]Item, error) {
	entries, err := s.entryDao.ListApproved()
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{EntryID: e.ID, UID: e.BeneficiaryUID, Amount: e.Amount})
	}
	return items, nil
}

func (s *GormStore) CreateBatch(now, periodStart time.Time, operator *uint64) (*mainmodel.SettlementBatch, error) {
	batchNo, err := s.batchDao.NextBatchNo(now)
	if err != nil {
		return nil, err
	}
	batch := &mainmodel.SettlementBatch{
		ID:          idgen.NewFrom("batch"),
		BatchNo:     batchNo,
		PeriodStart: periodStart,
		PeriodEnd:   now,
		Status:      constant.BatchPending,
		OperatorID:  operator,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err := s.batchDao.Create(batch); err != nil {
		return nil, err
	}
	if err := s.batchDao.MarkProcessing(batch.ID, now); err != nil {
		return nil, err
	}
	batch.Status = constant.BatchProcessing
	return batch, nil
}

// CommitPlan 批次事务本体。受益人账户按 UID 升序加锁入账；
// 任何一条 approved 记录在读取后被别人动过（如并发冲正）都会
// 触发整体回滚，留给下一轮收敛。
func (s *GormStore) CommitPlan(batch *mainmodel.SettlementBatch, plan Plan, now time.Time) error {
	err := dal.MainDB.Transaction(func(tx *gorm.DB) error {
		for _, g := range plan.Groups {
			if err := s.balanceDao.Change(tx, dao.ChangeReq{
				UID:      g.UID,
				Delta:    g.Amount,
				Type:     constant.MoneyLogSettle,
				EntryID:  g.EntryIDs[0],
				BatchNo:  batch.BatchNo,
				Operator: "settlement",
				Remark:   "佣金批次入账",
			}); err != nil {
				return err
			}

			res := tx.Model(&mainmodel.CommissionEntry{}).
				Where("id IN ? AND status = ?", g.EntryIDs, constant.EntryApproved).
				Updates(map[string]any{
					"status":      constant.EntrySettled,
					"settled_at":  now,
					"batch_id":    batch.ID,
					"update_time": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected != int64(len(g.EntryIDs)) {
				return &constant.ConcurrencyConflictError{
					Op:  "settlement.CommitPlan",
					Err: gorm.ErrRecordNotFound,
				}
			}
		}

		res := tx.Model(&mainmodel.SettlementBatch{}).
			Where("id = ? AND status = ?", batch.ID, constant.BatchProcessing).
			Updates(map[string]any{
				"status":            constant.BatchCompleted,
				"entry_count":       plan.EntryCount,
				"beneficiary_count": len(plan.Groups),
				"total_amount":      plan.Total,
				"completed_at":      now,
				"update_time":       now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return constant.NewError(constant.CodeBatchNotFound)
		}
		return nil
	})
	if err != nil {
		if constant.IsConcurrencyConflict(err) {
			return &constant.ConcurrencyConflictError{Op: "settlement.CommitPlan", Err: err}
		}
		return err
	}
	return nil
}
