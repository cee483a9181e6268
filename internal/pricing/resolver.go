package pricing

import (
	"github.com/shopspring/decimal"

	"mall-commission-api/internal/constant"
	mainmodel "mall-commission-api/internal/model/main"
)

// 价格瀑布：按买家角色从最专属档向下回落。档位字段为 nil 才算
// "未配置"（0 是合法价格），全部回落失败且基础价缺失时报
// ValidationError。
//
// 档位表按特权从高到低排列，新增档位只需加一行，不改控制流。
type priceFields struct {
	Base   *decimal.Decimal
	Member *decimal.Decimal
	Leader *decimal.Decimal
	Agent  *decimal.Decimal
}

var tierChain = []struct {
	MinRole constant.RoleLevel
	Pick    func(f priceFields) *decimal.Decimal
}{
	{constant.RoleAgent, func(f priceFields) *decimal.Decimal { return f.Agent }},
	{constant.RoleLeader, func(f priceFields) *decimal.Decimal { return f.Leader }},
	{constant.RoleMember, func(f priceFields) *decimal.Decimal { return f.Member }},
	{constant.RoleGuest, func(f priceFields) *decimal.Decimal { return f.Base }},
}

// ResolvePrice 解析买家角色对应的单价。给定 SKU 时只在 SKU 字段内
// 走瀑布，未给定时用商品字段，两者链路一致。
func ResolvePrice(p *mainmodel.Product, sku *mainmodel.ProductSku, role constant.RoleLevel) (decimal.Decimal, error) {
	if !role.Valid() {
		return decimal.Zero, &constant.ValidationError{Field: "role_level", Reason: "invalid role level"}
	}

	var f priceFields
	if sku != nil {
		f = priceFields{Base: sku.Price, Member: sku.MemberPrice, Leader: sku.LeaderPrice, Agent: sku.AgentPrice}
	} else {
		if p == nil {
			return decimal.Zero, &constant.ValidationError{Field: "product", Reason: "product is nil"}
		}
		f = priceFields{Base: p.Price, Member: p.MemberPrice, Leader: p.LeaderPrice, Agent: p.AgentPrice}
	}

	for _, tier := range tierChain {
		if role < tier.MinRole {
			continue
		}
		if v := tier.Pick(f); v != nil {
			return *v, nil
		}
	}
	return decimal.Zero, &constant.ValidationError{Field: "price", Reason: "base price missing"}
}
