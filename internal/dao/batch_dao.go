package dao

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dal"
	mainmodel "mall-commission-api/internal/model/main"
)

type BatchDao struct{}

func NewBatchDao() *BatchDao { return &BatchDao{} }

// NextBatchNo 批次号 = SET + 日期 + 当日序号。调度器单写者，
// 计数即可得到无洞序列。
func (r *BatchDao) NextBatchNo(now time.Time) (string, error) {
	day := now.Format("20060102")
	var count int64
	err := dal.MainDB.Model(&mainmodel.SettlementBatch{}).
		Where("batch_no LIKE ?", "SET"+day+"-%").
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SET%s-%03d", day, count+1), nil
}

func (r *BatchDao) Create(batch *mainmodel.SettlementBatch) error {
	return dal.MainDB.Create(batch).Error
}

// FindProcessing 查找遗留的 processing 批次（崩溃恢复用）
func (r *BatchDao) FindProcessing() (*mainmodel.SettlementBatch, error) {
	var b mainmodel.SettlementBatch
	err := dal.MainDB.Where("status = ?", constant.BatchProcessing).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// MarkProcessing pending -> processing，带守卫
func (r *BatchDao) MarkProcessing(id uint64, now time.Time) error {
	res := dal.MainDB.Model(&mainmodel.SettlementBatch{}).
		Where("id = ? AND status = ?", id, constant.BatchPending).
		Updates(map[string]any{
			"status":      constant.BatchProcessing,
			"started_at":  now,
			"update_time": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return constant.NewError(constant.CodeSettlementProcessing)
	}
	return nil
}

// MarkFailed 批次置失败（终态）。其中的记录保持 approved，
// 下一轮 tick 重新收敛。
func (r *BatchDao) MarkFailed(id uint64, msg string) error {
	now := time.Now()
	if len(msg) > 500 {
		msg = msg[:500]
	}
	return dal.MainDB.Model(&mainmodel.SettlementBatch{}).
		Where("id = ? AND status IN ?", id,
			[]constant.BatchStatus{constant.BatchPending, constant.BatchProcessing}).
		Updates(map[string]any{
			"status":        constant.BatchFailed,
			"error_message": msg,
			"completed_at":  now,
			"update_time":   now,
		}).Error
}

func (r *BatchDao) GetByID(id uint64) (*mainmodel.SettlementBatch, error) {
	var b mainmodel.SettlementBatch
	err := dal.MainDB.Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// List 批次列表，新批次在前
func (r *BatchDao) List(page, size int) ([]mainmodel.SettlementBatch, int64, error) {
	var list []mainmodel.SettlementBatch
	var total int64
	if err := dal.MainDB.Model(&mainmodel.SettlementBatch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	err := dal.MainDB.Order("id desc").Offset((page - 1) * size).Limit(size).Find(&list).Error
	return list, total, err
}
