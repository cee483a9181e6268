package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"mall-commission-api/internal/constant"
	mainmodel "mall-commission-api/internal/model/main"
)

func dp(v string) *decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestResolvePrice_RoleWaterfall(t *testing.T) {
	p := &mainmodel.Product{
		Price:       dp("100"),
		MemberPrice: dp("90"),
		LeaderPrice: dp("80"),
		AgentPrice:  dp("70"),
	}

	cases := []struct {
		role constant.RoleLevel
		want string
	}{
		{constant.RoleGuest, "100"},
		{constant.RoleMember, "90"},
		{constant.RoleLeader, "80"},
		{constant.RoleAgent, "70"},
	}
	for _, c := range cases {
		got, err := ResolvePrice(p, nil, c.role)
		if err != nil {
			t.Fatalf("role %v: %v", c.role, err)
		}
		if !got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("role %v: got %s, want %s", c.role, got, c.want)
		}
	}
}

func TestResolvePrice_NilTierFallsThrough(t *testing.T) {
	// 代理价和团长价未配置，代理买家应回落到会员价
	p := &mainmodel.Product{
		Price:       dp("100"),
		MemberPrice: dp("90"),
	}
	got, err := ResolvePrice(p, nil, constant.RoleAgent)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.RequireFromString("90")) {
		t.Errorf("got %s, want 90", got)
	}
}

func TestResolvePrice_ZeroIsValidPrice(t *testing.T) {
	// 会员价为 0 是合法价格，不能当作未配置继续回落
	p := &mainmodel.Product{
		Price:       dp("100"),
		MemberPrice: dp("0"),
	}
	got, err := ResolvePrice(p, nil, constant.RoleMember)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsZero() {
		t.Errorf("got %s, want 0", got)
	}
}

func TestResolvePrice_SkuOverridesProduct(t *testing.T) {
	p := &mainmodel.Product{Price: dp("100"), MemberPrice: dp("90")}
	sku := &mainmodel.ProductSku{Price: dp("50"), MemberPrice: dp("45")}

	got, err := ResolvePrice(p, sku, constant.RoleMember)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.RequireFromString("45")) {
		t.Errorf("got %s, want 45", got)
	}

	// SKU 指定后商品字段不再参与回落
	sku2 := &mainmodel.ProductSku{Price: dp("50")}
	got, err = ResolvePrice(p, sku2, constant.RoleMember)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.RequireFromString("50")) {
		t.Errorf("got %s, want 50", got)
	}
}

func TestResolvePrice_BasePriceMissing(t *testing.T) {
	p := &mainmodel.Product{}
	_, err := ResolvePrice(p, nil, constant.RoleGuest)
	var vErr *constant.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if vErr.Field != "price" {
		t.Errorf("unexpected field: %s", vErr.Field)
	}
}

func TestResolvePrice_InvalidRole(t *testing.T) {
	p := &mainmodel.Product{Price: dp("100")}
	_, err := ResolvePrice(p, nil, constant.RoleLevel(9))
	var vErr *constant.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}
