package commission

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"mall-commission-api/internal/config"
	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dto"
)

func testRates() *RateTable {
	return NewRateTable([]config.RoleRateCfg{
		{Role: 1, Self: 5},
		{Role: 2, Self: 7, Direct: 8},
		{Role: 3, Self: 10, Direct: 12, Indirect: 5},
	})
}

func testCalc() *Calculator {
	return NewCalculator(testRates(), 15)
}

func amountOf(t *testing.T, res Result, tier constant.EntryTier) decimal.Decimal {
	t.Helper()
	for _, e := range res.Entries {
		if e.Tier == tier {
			return e.Amount
		}
	}
	t.Fatalf("no %s entry in result", tier)
	return decimal.Zero
}

func TestCalculate_SelfOnly(t *testing.T) {
	item := OrderItem{OrderID: 1, OrderItemID: 11, Price: decimal.RequireFromString("100"), Quantity: 2}
	buyer := dto.Party{UID: 1001, RoleLevel: 1}

	res, err := testCalc().Calculate(item, buyer, nil, nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(res.Entries))
	}
	e := res.Entries[0]
	if e.Tier != constant.TierSelf || e.BeneficiaryUID != 1001 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Amount.StringFixed(2) != "10.00" {
		t.Errorf("self amount = %s, want 10.00", e.Amount)
	}
	if e.Status != constant.EntryFrozen {
		t.Errorf("new entry should be frozen, got %s", e.Status)
	}
}

func TestCalculate_ThreeTiers(t *testing.T) {
	item := OrderItem{OrderID: 1, OrderItemID: 11, Price: decimal.RequireFromString("100"), Quantity: 2}
	buyer := dto.Party{UID: 1001, RoleLevel: 1}
	parent := &dto.Party{UID: 2001, RoleLevel: 2}
	grandparent := &dto.Party{UID: 3001, RoleLevel: 3}

	res, err := testCalc().Calculate(item, buyer, parent, grandparent, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("want 3 entries, got %d", len(res.Entries))
	}
	if got := amountOf(t, res, constant.TierSelf).StringFixed(2); got != "10.00" {
		t.Errorf("self = %s", got)
	}
	if got := amountOf(t, res, constant.TierDirect).StringFixed(2); got != "16.00" {
		t.Errorf("direct = %s", got)
	}
	if got := amountOf(t, res, constant.TierIndirect).StringFixed(2); got != "10.00" {
		t.Errorf("indirect = %s", got)
	}
	if res.Total.StringFixed(2) != "36.00" {
		t.Errorf("total = %s, want 36.00", res.Total)
	}
}

func TestCalculate_RoundPerTierThenSum(t *testing.T) {
	// 单价 33.33：各档先独立四舍五入再求和。
	// self 5% = 1.6665 -> 1.67, direct 8% = 2.6664 -> 2.67,
	// indirect 5% -> 1.67，合计 6.01；若对原始总额统一舍入会得 5.99。
	item := OrderItem{OrderID: 1, OrderItemID: 11, Price: decimal.RequireFromString("33.33"), Quantity: 1}
	buyer := dto.Party{UID: 1001, RoleLevel: 1}
	parent := &dto.Party{UID: 2001, RoleLevel: 2}
	grandparent := &dto.Party{UID: 3001, RoleLevel: 3}

	res, err := testCalc().Calculate(item, buyer, parent, grandparent, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if res.Total.StringFixed(2) != "6.01" {
		t.Errorf("total = %s, want 6.01", res.Total)
	}
}

func TestCalculate_GuestBuyerNoSelf(t *testing.T) {
	item := OrderItem{OrderID: 1, OrderItemID: 11, Price: decimal.RequireFromString("100"), Quantity: 1}
	buyer := dto.Party{UID: 1001, RoleLevel: 0}
	parent := &dto.Party{UID: 2001, RoleLevel: 2}

	res, err := testCalc().Calculate(item, buyer, parent, nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Tier != constant.TierDirect {
		t.Errorf("guest buyer should only yield direct tier, got %+v", res.Entries)
	}
}

func TestCalculate_ZeroRateSilent(t *testing.T) {
	// 会员作为直接上级：直推率未配置（为零），该档静默不出记录
	item := OrderItem{OrderID: 1, OrderItemID: 11, Price: decimal.RequireFromString("100"), Quantity: 1}
	buyer := dto.Party{UID: 1001, RoleLevel: 1}
	parent := &dto.Party{UID: 2001, RoleLevel: 1}

	res, err := testCalc().Calculate(item, buyer, parent, nil, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range res.Entries {
		if e.Tier == constant.TierDirect {
			t.Errorf("zero-rate tier must not produce an entry: %+v", e)
		}
	}
}

func TestCalculate_IndirectRequiresLeaderOrAgent(t *testing.T) {
	item := OrderItem{OrderID: 1, OrderItemID: 11, Price: decimal.RequireFromString("100"), Quantity: 1}
	buyer := dto.Party{UID: 1001, RoleLevel: 1}
	grandparent := &dto.Party{UID: 3001, RoleLevel: 1} // 会员不拿间推

	res, err := testCalc().Calculate(item, buyer, nil, grandparent, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range res.Entries {
		if e.Tier == constant.TierIndirect {
			t.Errorf("member grandparent must not earn indirect: %+v", e)
		}
	}
}

func TestCalculate_FreezeDeadline(t *testing.T) {
	shipped := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	item := OrderItem{OrderID: 1, OrderItemID: 11, Price: decimal.RequireFromString("100"), Quantity: 1}
	buyer := dto.Party{UID: 1001, RoleLevel: 1}

	res, err := testCalc().Calculate(item, buyer, nil, nil, shipped)
	if err != nil {
		t.Fatal(err)
	}
	want := shipped.Add(15 * 24 * time.Hour)
	if !res.Entries[0].RefundDeadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", res.Entries[0].RefundDeadline, want)
	}
}

func TestCalculate_InvalidInput(t *testing.T) {
	buyer := dto.Party{UID: 1001, RoleLevel: 1}

	_, err := testCalc().Calculate(OrderItem{Price: decimal.RequireFromString("100"), Quantity: 0},
		buyer, nil, nil, time.Now())
	var vErr *constant.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("zero quantity: want ValidationError, got %v", err)
	}

	_, err = testCalc().Calculate(OrderItem{Price: decimal.RequireFromString("-1"), Quantity: 1},
		buyer, nil, nil, time.Now())
	if !errors.As(err, &vErr) {
		t.Errorf("negative price: want ValidationError, got %v", err)
	}
}
