package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Item 一条待结算记录的最小投影
type Item struct {
	EntryID uint64
	UID     uint64
	Amount  decimal.Decimal
}

// Group 同一受益人的入账分组。批次事务按 UID 升序逐组加锁，
// 固定锁序避免并发批次/人工操作间死锁。
type Group struct {
	UID      uint64
	Amount   decimal.Decimal
	EntryIDs []uint64
}

// Plan 一次批次的完整入账计划
type Plan struct {
	Groups     []Group
	EntryCount int
	Total      decimal.Decimal
}

// Build 按受益人分组求和，并按 UID 升序排定加锁顺序。
// 纯函数，锁外执行。
func Build(items []Item) Plan {
	byUID := make(map[uint64]*Group)
	for _, it := range items {
		g, ok := byUID[it.UID]
		if !ok {
			g = &Group{UID: it.UID, Amount: decimal.Zero}
			byUID[it.UID] = g
		}
		g.Amount = g.Amount.Add(it.Amount)
		g.EntryIDs = append(g.EntryIDs, it.EntryID)
	}

	plan := Plan{Total: decimal.Zero}
	for _, g := range byUID {
		plan.Groups = append(plan.Groups, *g)
		plan.EntryCount += len(g.EntryIDs)
		plan.Total = plan.Total.Add(g.Amount)
	}
	sort.Slice(plan.Groups, func(i, j int) bool {
		return plan.Groups[i].UID < plan.Groups[j].UID
	})
	return plan
}
