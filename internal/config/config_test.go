package config

import (
	"errors"
	"testing"

	"mall-commission-api/internal/constant"
)

func validRoot() Root {
	var c Root
	c.Commission.FreezeDays = 15
	c.Commission.RefundDays = 7
	c.Cache.Driver = "redis"
	return c
}

func TestValidate_OK(t *testing.T) {
	c := validRoot()
	if err := Validate(&c); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidate_FreezeShorterThanRefund(t *testing.T) {
	c := validRoot()
	c.Commission.FreezeDays = 5
	err := Validate(&c)
	var iErr *constant.ConfigInvariantError
	if !errors.As(err, &iErr) {
		t.Fatalf("want ConfigInvariantError, got %v", err)
	}
}

func TestValidate_BadCacheDriver(t *testing.T) {
	c := validRoot()
	c.Cache.Driver = "memcached"
	var iErr *constant.ConfigInvariantError
	if !errors.As(Validate(&c), &iErr) {
		t.Fatal("unknown cache driver should be rejected")
	}
}

func TestValidate_FreezeEqualRefundAllowed(t *testing.T) {
	c := validRoot()
	c.Commission.FreezeDays = 7
	c.Commission.RefundDays = 7
	if err := Validate(&c); err != nil {
		t.Errorf("freeze == refund window is allowed: %v", err)
	}
}
