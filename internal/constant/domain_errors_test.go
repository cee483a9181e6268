package constant

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsConcurrencyConflict(t *testing.T) {
	cc := &ConcurrencyConflictError{Op: "settle", Err: errors.New("row locked")}
	if !IsConcurrencyConflict(cc) {
		t.Error("typed conflict not detected")
	}
	if !IsConcurrencyConflict(fmt.Errorf("wrap: %w", cc)) {
		t.Error("wrapped conflict not detected")
	}
	if !IsConcurrencyConflict(errors.New("Error 1205: Lock wait timeout exceeded")) {
		t.Error("mysql 1205 not detected")
	}
	if !IsConcurrencyConflict(errors.New("Error 1213: Deadlock found when trying to get lock")) {
		t.Error("mysql 1213 not detected")
	}
	if IsConcurrencyConflict(errors.New("duplicate entry")) {
		t.Error("unrelated error misclassified")
	}
	if IsConcurrencyConflict(nil) {
		t.Error("nil should not be a conflict")
	}
}
