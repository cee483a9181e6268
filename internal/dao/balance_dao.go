package dao

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dal"
	"mall-commission-api/internal/idgen"
	mainmodel "mall-commission-api/internal/model/main"
	"mall-commission-api/internal/shard"
)

// BalanceDao 受益人余额的唯一写入口。所有变更都在调用方事务内
// 持行锁完成，并在分月流水表落一条带前后余额的日志。
type BalanceDao struct {
	logShard *shard.ShardEngine
}

func NewBalanceDao(logShards int) *BalanceDao {
	return &BalanceDao{
		logShard: shard.NewShardEngine("c_money_log", uint32(logShards)),
	}
}

// ChangeReq 一次余额变更
type ChangeReq struct {
	UID      uint64
	Delta    decimal.Decimal // 入账为正，冲正为负
	Type     int8            // constant.MoneyLogSettle / MoneyLogClawback
	EntryID  uint64
	BatchNo  string
	Operator string
	Remark   string
}

// Change 在事务 tx 内原子变更余额。账户行先 FOR UPDATE 锁定；
// 入账时账户不存在则创建，扣减后余额不得为负。
func (r *BalanceDao) Change(tx *gorm.DB, req ChangeReq) error {
	now := time.Now()

	var account mainmodel.UserMoney
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uid = ?", req.UID).First(&account).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		if constant.IsConcurrencyConflict(err) {
			return &constant.ConcurrencyConflictError{Op: "BalanceDao.Change", Err: err}
		}
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if req.Delta.IsNegative() {
			return constant.NewError(constant.CodeBalanceNotFound)
		}
		account = mainmodel.UserMoney{
			UID:         req.UID,
			Status:      1,
			Money:       decimal.Zero,
			FreezeMoney: decimal.Zero,
			CreateTime:  now,
			UpdateTime:  now,
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
	}

	newBalance := account.Money.Add(req.Delta)
	if newBalance.IsNegative() {
		return constant.NewError(constant.CodeBalanceInsufficient)
	}

	if err := tx.Model(&mainmodel.UserMoney{}).
		Where("uid = ?", req.UID).
		Updates(map[string]any{
			"money":       newBalance,
			"update_time": now,
		}).Error; err != nil {
		return err
	}

	logRow := mainmodel.MoneyLog{
		ID:         idgen.New(),
		UID:        req.UID,
		EntryID:    req.EntryID,
		BatchNo:    req.BatchNo,
		Money:      req.Delta,
		Type:       req.Type,
		Operator:   req.Operator,
		OldBalance: account.Money,
		Balance:    newBalance,
		Remark:     req.Remark,
		CreateTime: now,
	}
	table := r.logShard.GetTable(logRow.ID, now)
	return tx.Table(table).Create(&logRow).Error
}

// GetBalance 查询可用余额，账户未开通视为零
func (r *BalanceDao) GetBalance(uid uint64) (decimal.Decimal, error) {
	var account mainmodel.UserMoney
	err := dal.MainDB.Where("uid = ?", uid).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return account.Money, nil
}
