package commission

import (
	"github.com/shopspring/decimal"

	"mall-commission-api/internal/config"
	"mall-commission-api/internal/constant"
)

// TierRates 某一角色作为受益人时的三档费率（百分比）
type TierRates struct {
	Self     decimal.Decimal
	Direct   decimal.Decimal
	Indirect decimal.Decimal
}

// RateTable 角色费率表。启动时从配置加载一次，运行期只读；
// 按角色查表取费率，未配置的角色返回零费率（该档静默不出佣金）。
type RateTable struct {
	rates map[constant.RoleLevel]TierRates
}

func NewRateTable(cfgs []config.RoleRateCfg) *RateTable {
	t := &RateTable{rates: make(map[constant.RoleLevel]TierRates, len(cfgs))}
	for _, c := range cfgs {
		t.rates[constant.RoleLevel(c.Role)] = TierRates{
			Self:     decimal.NewFromFloat(c.Self),
			Direct:   decimal.NewFromFloat(c.Direct),
			Indirect: decimal.NewFromFloat(c.Indirect),
		}
	}
	return t
}

func (t *RateTable) SelfRate(r constant.RoleLevel) decimal.Decimal {
	return t.rates[r].Self
}

func (t *RateTable) DirectRate(r constant.RoleLevel) decimal.Decimal {
	return t.rates[r].Direct
}

func (t *RateTable) IndirectRate(r constant.RoleLevel) decimal.Decimal {
	return t.rates[r].Indirect
}
