package dao

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dal"
	mainmodel "mall-commission-api/internal/model/main"
)

type CommissionDao struct{}

func NewCommissionDao() *CommissionDao { return &CommissionDao{} }

func (r *CommissionDao) GetByID(id uint64) (*mainmodel.CommissionEntry, error) {
	var e mainmodel.CommissionEntry
	if err := dal.MainDB.Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// GetByIDForUpdate 加行锁读取，人工审核与调度器竞争同一条记录时串行化
func (r *CommissionDao) GetByIDForUpdate(tx *gorm.DB, id uint64) (*mainmodel.CommissionEntry, error) {
	var e mainmodel.CommissionEntry
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if constant.IsConcurrencyConflict(err) {
			return nil, &constant.ConcurrencyConflictError{Op: "GetByIDForUpdate", Err: err}
		}
		return nil, err
	}
	return &e, nil
}

// ListByOrderItem 某订单项的全部分账记录（不含冲正行）
func (r *CommissionDao) ListByOrderItem(orderItemID uint64) ([]mainmodel.CommissionEntry, error) {
	var list []mainmodel.CommissionEntry
	err := dal.MainDB.
		Where("order_item_id = ? AND tier <> ?", orderItemID, constant.TierClawback).
		Order("id asc").Find(&list).Error
	return list, err
}

// InsertBatch 发货计佣的落库。事务内先查订单项是否已有记录，
// 有则原样返回（幂等），与资金日志的写入保持同一套 check-then-insert 习惯。
// 存在性检查带 FOR UPDATE：order_item_id 走索引，空结果也锁住间隙，
// 两个并发首次调用在此串行化，不会双写。
func (r *CommissionDao) InsertBatch(orderItemID uint64, entries []mainmodel.CommissionEntry) ([]mainmodel.CommissionEntry, bool, error) {
	var out []mainmodel.CommissionEntry
	created := false
	err := dal.MainDB.Transaction(func(tx *gorm.DB) error {
		var existing []mainmodel.CommissionEntry
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_item_id = ? AND tier <> ?", orderItemID, constant.TierClawback).
			Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 {
			out = existing
			return nil
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}
		out = entries
		created = true
		return nil
	})
	return out, created, err
}

// FindFrozenDue 冻结期已过、待晋升的记录
func (r *CommissionDao) FindFrozenDue(now time.Time, limit int) ([]mainmodel.CommissionEntry, error) {
	var list []mainmodel.CommissionEntry
	err := dal.MainDB.
		Where("status = ? AND refund_deadline <= ?", constant.EntryFrozen, now).
		Order("id asc").Limit(limit).Find(&list).Error
	return list, err
}

// ListApproved 全部待结算记录
func (r *CommissionDao) ListApproved() ([]mainmodel.CommissionEntry, error) {
	var list []mainmodel.CommissionEntry
	err := dal.MainDB.
		Where("status = ?", constant.EntryApproved).
		Order("id asc").Find(&list).Error
	return list, err
}

// ListByStatus 按状态分页查询（管理端列表）
func (r *CommissionDao) ListByStatus(status constant.EntryStatus, page, size int) ([]mainmodel.CommissionEntry, int64, error) {
	var list []mainmodel.CommissionEntry
	var total int64
	q := dal.MainDB.Model(&mainmodel.CommissionEntry{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 200 {
		size = 20
	}
	err := q.Order("id desc").Offset((page - 1) * size).Limit(size).Find(&list).Error
	return list, total, err
}

// StatusSum 受益人某状态下的金额合计
type StatusSum struct {
	Status constant.EntryStatus `gorm:"column:status"`
	Total  decimal.Decimal      `gorm:"column:total"`
}

// SumByUID 受益人各状态金额汇总（对账/汇总接口用，锁外执行）
func (r *CommissionDao) SumByUID(uid uint64) ([]StatusSum, error) {
	var sums []StatusSum
	err := dal.MainDB.Model(&mainmodel.CommissionEntry{}).
		Select("status, COALESCE(SUM(amount),0) as total").
		Where("beneficiary_uid = ?", uid).
		Group("status").Scan(&sums).Error
	return sums, err
}

// FindClawbackByOriginal 查某原始记录的冲正行（幂等判断）
func (r *CommissionDao) FindClawbackByOriginal(tx *gorm.DB, originalID uint64) (*mainmodel.CommissionEntry, error) {
	var e mainmodel.CommissionEntry
	err := tx.Where("original_entry_id = ?", originalID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
