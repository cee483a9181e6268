package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"mall-commission-api/internal/cache"
	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dal"
	"mall-commission-api/internal/dao"
	"mall-commission-api/internal/dto"
	"mall-commission-api/internal/ledger"
	"mall-commission-api/internal/logger"
	mainmodel "mall-commission-api/internal/model/main"
)

// ApprovalService 人工审核。逐条独立事务，先对目标记录加行锁再
// 校验并迁移，保证与调度器同一时刻不会在一条记录上竞争。
// 批量操作按条返回结果，单条失败不回滚其余。
type ApprovalService struct {
	entryDao *dao.CommissionDao
	ledger   *ledger.Ledger
	cache    cache.Cache
}

func NewApprovalService(lg *ledger.Ledger, c cache.Cache) *ApprovalService {
	return &ApprovalService{
		entryDao: dao.NewCommissionDao(),
		ledger:   lg,
		cache:    c,
	}
}

// Approve 审核通过：pending_approval -> approved，记录审核人并把
// available_at 置为当前时间
func (s *ApprovalService) Approve(ids []uint64, operator uint64) dto.BatchOpResult {
	result := dto.BatchOpResult{Succeeded: []string{}, Failed: []dto.BatchOpFailure{}}
	for _, id := range ids {
		if err := s.approveOne(id, operator); err != nil {
			result.Failed = append(result.Failed, toFailure(id, err))
			continue
		}
		result.Succeeded = append(result.Succeeded, strconv.FormatUint(id, 10))
	}
	return result
}

// Reject 审核驳回：pending_approval -> cancelled，原因必填
func (s *ApprovalService) Reject(ids []uint64, operator uint64, reason string) dto.BatchOpResult {
	result := dto.BatchOpResult{Succeeded: []string{}, Failed: []dto.BatchOpFailure{}}
	if reason == "" {
		for _, id := range ids {
			result.Failed = append(result.Failed,
				toFailure(id, constant.NewError(constant.CodeRejectNeedReason)))
		}
		return result
	}
	for _, id := range ids {
		if err := s.rejectOne(id, operator, reason); err != nil {
			result.Failed = append(result.Failed, toFailure(id, err))
			continue
		}
		result.Succeeded = append(result.Succeeded, strconv.FormatUint(id, 10))
	}
	return result
}

func (s *ApprovalService) approveOne(id uint64, operator uint64) error {
	var applied *mainmodel.CommissionEntry
	var from constant.EntryStatus
	err := dal.MainDB.Transaction(func(tx *gorm.DB) error {
		locked, err := s.entryDao.GetByIDForUpdate(tx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return constant.NewError(constant.CodeEntryNotFound)
		}
		now := time.Now()
		from = locked.Status
		if err := s.ledger.Apply(tx, locked, constant.EntryApproved, map[string]any{
			"available_at": now,
			"approved_by":  operator,
			"approved_at":  now,
		}); err != nil {
			return err
		}
		applied = locked
		return nil
	})
	if err != nil {
		return err
	}
	s.ledger.Emit(applied, from, constant.EntryApproved, "")
	s.cache.Del(fmt.Sprintf(summaryKeyFmt, applied.BeneficiaryUID))
	logger.Ledger.Infof("佣金 %d 审核通过, 操作人 %d", id, operator)
	return nil
}

func (s *ApprovalService) rejectOne(id uint64, operator uint64, reason string) error {
	var applied *mainmodel.CommissionEntry
	err := dal.MainDB.Transaction(func(tx *gorm.DB) error {
		locked, err := s.entryDao.GetByIDForUpdate(tx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return constant.NewError(constant.CodeEntryNotFound)
		}
		// 驳回只对待审核记录有意义；frozen 的取消属于退款冲正的职权
		if locked.Status != constant.EntryPendingApproval {
			return constant.NewError(constant.CodeApprovalNotAllowed)
		}
		if err := s.ledger.Apply(tx, locked, constant.EntryCancelled, map[string]any{
			"remark": reason,
		}); err != nil {
			return err
		}
		applied = locked
		return nil
	})
	if err != nil {
		return err
	}
	s.ledger.Emit(applied, constant.EntryPendingApproval, constant.EntryCancelled, reason)
	s.cache.Del(fmt.Sprintf(summaryKeyFmt, applied.BeneficiaryUID))
	logger.Ledger.Infof("佣金 %d 审核驳回, 操作人 %d, 原因: %s", id, operator, reason)
	return nil
}

func toFailure(id uint64, err error) dto.BatchOpFailure {
	f := dto.BatchOpFailure{ID: strconv.FormatUint(id, 10)}

	var ce constant.Error
	var ste *constant.StateTransitionError
	var ire *constant.ImmutableRecordError
	var cce *constant.ConcurrencyConflictError
	switch {
	case errors.As(err, &ire):
		f.Code = constant.CodeEntryImmutable
	case errors.As(err, &ste):
		f.Code = constant.CodeEntryIllegalState
	case errors.As(err, &cce):
		f.Code = constant.CodeEntryConcurrentEdit
	case errors.As(err, &ce):
		f.Code = ce.Code()
	default:
		f.Code = constant.CodeDatabaseError
	}
	if info, ok := constant.GetErrorInfo(f.Code); ok {
		f.Msg = info.CN
	} else {
		f.Msg = err.Error()
	}
	return f
}
