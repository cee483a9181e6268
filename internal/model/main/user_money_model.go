package mainmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserMoney 受益人余额账户。只允许 BalanceDao 在持有行锁的事务内
// 以增量方式修改，禁止直接赋值覆盖。
type UserMoney struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`                                       // 主键
	UID         uint64          `gorm:"column:uid;not null;uniqueIndex" json:"uid"`                                         // 用户ID
	Status      int8            `gorm:"column:status;not null;default:1" json:"status"`                                     // 状态: 0=冻结, 1=可用
	Money       decimal.Decimal `gorm:"column:money;type:decimal(18,4);not null;default:0.0000" json:"money"`               // 可用余额
	FreezeMoney decimal.Decimal `gorm:"column:freeze_money;type:decimal(18,4);not null;default:0.0000" json:"freeze_money"` // 冻结余额
	CreateTime  time.Time       `gorm:"column:create_time;not null" json:"create_time"`
	UpdateTime  time.Time       `gorm:"column:update_time;not null" json:"update_time"`
}

func (UserMoney) TableName() string {
	return "c_user_money"
}
