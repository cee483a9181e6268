package shard

import (
	"testing"
	"time"
)

func TestCRC32ShardStrategy(t *testing.T) {
	strategy := NewCRC32Strategy(4)
	entryID := uint64(123456789)
	shard := strategy.GetShard(entryID)
	if shard < 0 || shard >= 4 {
		t.Errorf("Shard out of range: %d", shard)
	}
}

func TestShardEngine_GetTable(t *testing.T) {
	engine := NewShardEngine("c_money_log", 4)
	entryID := uint64(987654321)
	timestamp := time.Date(2026, 9, 12, 12, 0, 0, 0, time.Local)
	table := engine.GetTable(entryID, timestamp)

	expectedPrefix := "c_money_log_202609_p"
	if len(table) < len(expectedPrefix) || table[:len(expectedPrefix)] != expectedPrefix {
		t.Errorf("Unexpected table name: %s", table)
	}
}

func TestShardEngine_GetTable_StableForSameID(t *testing.T) {
	engine := NewShardEngine("c_money_log", 4)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	a := engine.GetTable(42, ts)
	b := engine.GetTable(42, ts)
	if a != b {
		t.Errorf("table name not stable: %s vs %s", a, b)
	}
}
