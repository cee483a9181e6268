package commission

import (
	"time"

	"github.com/shopspring/decimal"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dto"
	mainmodel "mall-commission-api/internal/model/main"
	"mall-commission-api/internal/utils"
)

// OrderItem 参与计算的订单项快照（单价已按买家角色解析）
type OrderItem struct {
	OrderID     uint64
	OrderItemID uint64
	Price       decimal.Decimal
	Quantity    int32
}

// Result 一次计算产出。Total 是各档"先独立舍入再求和"的结果，
// 与历史对账口径一致，不得改成总额统一舍入。
type Result struct {
	Entries []mainmodel.CommissionEntry
	Total   decimal.Decimal
}

// Calculator 多级分佣计算器。唯一的在用算法是按比例计提，
// 旧的固定金额算法已废弃，不再保留。
type Calculator struct {
	rates  *RateTable
	freeze time.Duration
}

func NewCalculator(rates *RateTable, freezeDays int) *Calculator {
	return &Calculator{
		rates:  rates,
		freeze: time.Duration(freezeDays) * 24 * time.Hour,
	}
}

// Calculate 按订单项生成 frozen 状态的佣金记录：
//   - self：买家角色高于游客时计提，单价×数量×自返率
//   - direct：存在直接上级时计提，小计×直推率
//   - indirect：间接上级为团长/代理时计提，小计×间推率
//
// 任一档费率为零则该档静默不出记录，不算错误。
func (c *Calculator) Calculate(item OrderItem, buyer dto.Party, parent, grandparent *dto.Party, shippedAt time.Time) (Result, error) {
	if item.Quantity <= 0 {
		return Result{}, &constant.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if item.Price.IsNegative() {
		return Result{}, &constant.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if shippedAt.IsZero() {
		shippedAt = time.Now()
	}
	deadline := shippedAt.Add(c.freeze)

	lineTotal := item.Price.Mul(decimal.NewFromInt32(item.Quantity))
	res := Result{Total: decimal.Zero}

	appendEntry := func(tier constant.EntryTier, uid uint64, rate decimal.Decimal) {
		if rate.IsZero() {
			return
		}
		amount := utils.RoundHalfUp2(lineTotal.Mul(utils.Percent(rate)))
		if amount.IsZero() {
			return
		}
		res.Entries = append(res.Entries, mainmodel.CommissionEntry{
			OrderID:        item.OrderID,
			OrderItemID:    item.OrderItemID,
			Tier:           tier,
			BeneficiaryUID: uid,
			Amount:         amount,
			Status:         constant.EntryFrozen,
			RefundDeadline: deadline,
			CreateTime:     shippedAt,
			UpdateTime:     shippedAt,
		})
		res.Total = res.Total.Add(amount)
	}

	buyerRole := constant.RoleLevel(buyer.RoleLevel)
	if buyerRole > constant.RoleGuest {
		appendEntry(constant.TierSelf, buyer.UID, c.rates.SelfRate(buyerRole))
	}
	if parent != nil {
		appendEntry(constant.TierDirect, parent.UID, c.rates.DirectRate(constant.RoleLevel(parent.RoleLevel)))
	}
	if grandparent != nil {
		gpRole := constant.RoleLevel(grandparent.RoleLevel)
		if gpRole == constant.RoleLeader || gpRole == constant.RoleAgent {
			appendEntry(constant.TierIndirect, grandparent.UID, c.rates.IndirectRate(gpRole))
		}
	}

	return res, nil
}
