package settlement

import (
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"mall-commission-api/internal/constant"
	mainmodel "mall-commission-api/internal/model/main"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type recordPub struct{ keys []string }

func (p *recordPub) Publish(key string, _ any) error {
	p.keys = append(p.keys, key)
	return nil
}

// memStore 内存实现，语义对齐生产 Store：CommitPlan 整体成功或
// 整体不生效，批次未 completed 时余额一分钱也不会动。
type memStore struct {
	frozen      []mainmodel.CommissionEntry
	approved    map[uint64]Item
	openRefund  map[uint64]bool
	batches     []*mainmodel.SettlementBatch
	balances    map[uint64]decimal.Decimal
	settled     map[uint64]decimal.Decimal
	nextID      uint64
	failCommits int

	// 置非 nil 后，下一次 CommitPlan 关闭 commitStarted 并阻塞到
	// commitRelease 关闭，模拟入账事务在途
	commitStarted chan struct{}
	commitRelease chan struct{}
}

func newMemStore() *memStore {
	return &memStore{
		approved:   make(map[uint64]Item),
		openRefund: make(map[uint64]bool),
		balances:   make(map[uint64]decimal.Decimal),
		settled:    make(map[uint64]decimal.Decimal),
	}
}

func (s *memStore) addApproved(entryID, uid uint64, amount string) {
	s.approved[entryID] = Item{EntryID: entryID, UID: uid, Amount: decimal.RequireFromString(amount)}
}

func (s *memStore) StaleProcessingBatch() (*mainmodel.SettlementBatch, error) {
	for _, b := range s.batches {
		if b.Status == constant.BatchProcessing {
			return b, nil
		}
	}
	return nil, nil
}

func (s *memStore) MarkBatchFailed(id uint64, msg string) error {
	for _, b := range s.batches {
		if b.ID == id {
			b.Status = constant.BatchFailed
			b.ErrorMessage = msg
			return nil
		}
	}
	return fmt.Errorf("batch %d not found", id)
}

func (s *memStore) PromoteDue(now time.Time, limit int) ([]mainmodel.CommissionEntry, error) {
	var promoted []mainmodel.CommissionEntry
	for i := range s.frozen {
		e := &s.frozen[i]
		if e.Status != constant.EntryFrozen || e.RefundDeadline.After(now) {
			continue
		}
		if s.openRefund[e.OrderItemID] {
			continue
		}
		e.Status = constant.EntryPendingApproval
		promoted = append(promoted, *e)
		if len(promoted) >= limit {
			break
		}
	}
	return promoted, nil
}

func (s *memStore) ApprovedItems() ([]Item, error) {
	items := make([]Item, 0, len(s.approved))
	for _, it := range s.approved {
		items = append(items, it)
	}
	return items, nil
}

func (s *memStore) CreateBatch(now, periodStart time.Time, operator *uint64) (*mainmodel.SettlementBatch, error) {
	s.nextID++
	b := &mainmodel.SettlementBatch{
		ID:          s.nextID,
		BatchNo:     fmt.Sprintf("SET%s-%03d", now.Format("20060102"), len(s.batches)+1),
		PeriodStart: periodStart,
		PeriodEnd:   now,
		Status:      constant.BatchProcessing,
		OperatorID:  operator,
	}
	s.batches = append(s.batches, b)
	return b, nil
}

func (s *memStore) CommitPlan(batch *mainmodel.SettlementBatch, plan Plan, now time.Time) error {
	if s.commitStarted != nil {
		started := s.commitStarted
		s.commitStarted = nil
		close(started)
		<-s.commitRelease
	}
	if s.failCommits > 0 {
		s.failCommits--
		return errors.New("injected commit failure")
	}
	for _, g := range plan.Groups {
		s.balances[g.UID] = s.balances[g.UID].Add(g.Amount)
		for _, id := range g.EntryIDs {
			s.settled[id] = s.approved[id].Amount
			delete(s.approved, id)
		}
	}
	batch.Status = constant.BatchCompleted
	batch.EntryCount = plan.EntryCount
	batch.BeneficiaryCount = len(plan.Groups)
	batch.TotalAmount = plan.Total
	return nil
}

func newTestScheduler(store Store, now time.Time, pub *recordPub) *Scheduler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewScheduler(store, fixedClock{t: now}, pub, log, 60, 500)
}

func TestTick_PromotesDueFrozenEntries(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.Local)
	store := newMemStore()
	store.frozen = []mainmodel.CommissionEntry{
		{ID: 1, OrderItemID: 11, Status: constant.EntryFrozen, RefundDeadline: now.Add(-time.Hour)},
		{ID: 2, OrderItemID: 12, Status: constant.EntryFrozen, RefundDeadline: now.Add(time.Hour)},
		{ID: 3, OrderItemID: 13, Status: constant.EntryFrozen, RefundDeadline: now.Add(-time.Hour)},
	}
	store.openRefund[13] = true
	pub := &recordPub{}

	if err := newTestScheduler(store, now, pub).Tick(); err != nil {
		t.Fatal(err)
	}

	if store.frozen[0].Status != constant.EntryPendingApproval {
		t.Errorf("due entry not promoted: %s", store.frozen[0].Status)
	}
	if store.frozen[1].Status != constant.EntryFrozen {
		t.Errorf("not-yet-due entry must stay frozen: %s", store.frozen[1].Status)
	}
	if store.frozen[2].Status != constant.EntryFrozen {
		t.Errorf("entry with open refund must stay frozen: %s", store.frozen[2].Status)
	}
	if len(pub.keys) != 1 || pub.keys[0] != "commission.state_changed" {
		t.Errorf("unexpected events: %v", pub.keys)
	}
}

func TestTick_SettlesApprovedAtomically(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.Local)
	store := newMemStore()
	store.addApproved(1, 100, "10.00")
	store.addApproved(2, 100, "16.00")
	store.addApproved(3, 200, "5.50")
	pub := &recordPub{}
	sched := newTestScheduler(store, now, pub)

	if err := sched.Tick(); err != nil {
		t.Fatal(err)
	}

	if len(store.batches) != 1 {
		t.Fatalf("want 1 batch, got %d", len(store.batches))
	}
	b := store.batches[0]
	if b.Status != constant.BatchCompleted || b.EntryCount != 3 || b.BeneficiaryCount != 2 {
		t.Errorf("batch wrong: %+v", b)
	}
	if b.TotalAmount.StringFixed(2) != "31.50" {
		t.Errorf("batch total = %s", b.TotalAmount)
	}
	if store.balances[100].StringFixed(2) != "26.00" || store.balances[200].StringFixed(2) != "5.50" {
		t.Errorf("balances wrong: %v", store.balances)
	}
	if len(store.approved) != 0 {
		t.Errorf("settled entries must leave the approved set")
	}

	// 没有待结算记录时不再开批次
	if err := sched.Tick(); err != nil {
		t.Fatal(err)
	}
	if len(store.batches) != 1 {
		t.Errorf("empty tick must not create a batch")
	}
}

func TestTick_FailedCommitKeepsEntriesApproved(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.Local)
	store := newMemStore()
	store.addApproved(1, 100, "10.00")
	store.addApproved(2, 200, "7.00")
	store.failCommits = 1
	pub := &recordPub{}
	sched := newTestScheduler(store, now, pub)

	if err := sched.Tick(); err == nil {
		t.Fatal("tick should surface the commit failure")
	}
	if store.batches[0].Status != constant.BatchFailed {
		t.Errorf("failed batch should be marked failed: %s", store.batches[0].Status)
	}
	if len(store.balances) != 0 {
		t.Errorf("no balance may move on a failed batch: %v", store.balances)
	}
	if len(store.approved) != 2 {
		t.Errorf("entries must stay approved after a failed batch")
	}

	// 下一轮重跑：同一批记录入账恰好一次
	if err := sched.Tick(); err != nil {
		t.Fatal(err)
	}
	if store.balances[100].StringFixed(2) != "10.00" || store.balances[200].StringFixed(2) != "7.00" {
		t.Errorf("rerun must credit each entry exactly once: %v", store.balances)
	}

	sawFailed, sawCompleted := false, false
	for _, k := range pub.keys {
		switch k {
		case "settlement.failed":
			sawFailed = true
		case "settlement.completed":
			sawCompleted = true
		}
	}
	if !sawFailed || !sawCompleted {
		t.Errorf("expected both failed and completed events, got %v", pub.keys)
	}
}

func TestTick_CrashRecoveryMarksStaleBatchFailed(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.Local)
	store := newMemStore()
	// 模拟上个进程在入账事务提交前崩溃：批次留在 processing
	store.nextID = 9
	store.batches = append(store.batches, &mainmodel.SettlementBatch{
		ID: 9, BatchNo: "SET20260331-001", Status: constant.BatchProcessing,
	})
	store.addApproved(1, 100, "10.00")
	pub := &recordPub{}

	if err := newTestScheduler(store, now, pub).Tick(); err != nil {
		t.Fatal(err)
	}

	if store.batches[0].Status != constant.BatchFailed {
		t.Errorf("stale batch should be failed: %s", store.batches[0].Status)
	}
	if len(store.batches) != 2 || store.batches[1].Status != constant.BatchCompleted {
		t.Fatalf("a fresh batch should complete the sweep: %+v", store.batches)
	}
	if store.balances[100].StringFixed(2) != "10.00" {
		t.Errorf("entry credited wrong amount: %v", store.balances)
	}
}

func TestRunManual_RecordsOperator(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.Local)
	store := newMemStore()
	store.addApproved(1, 100, "10.00")

	if err := newTestScheduler(store, now, &recordPub{}).RunManual(777); err != nil {
		t.Fatal(err)
	}
	if store.batches[0].OperatorID == nil || *store.batches[0].OperatorID != 777 {
		t.Errorf("manual batch must record the operator")
	}
}

func TestRunManual_RejectedWhileTickInFlight(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.Local)
	store := newMemStore()
	store.addApproved(1, 100, "10.00")
	store.commitStarted = make(chan struct{})
	store.commitRelease = make(chan struct{})
	started := store.commitStarted
	sched := newTestScheduler(store, now, &recordPub{})

	done := make(chan error, 1)
	go func() { done <- sched.Tick() }()
	<-started

	// tick 的入账事务还在途：手动触发必须被拒，
	// 既不能把在途批次判成僵尸，也不能开第二个批次
	err := sched.RunManual(777)
	if err == nil {
		t.Fatal("manual run during an in-flight tick must be rejected")
	}
	var ce constant.Error
	if !errors.As(err, &ce) || ce.Code() != constant.CodeSettlementProcessing {
		t.Errorf("want CodeSettlementProcessing, got %v", err)
	}
	if len(store.batches) != 1 {
		t.Fatalf("second batch opened over the same approved set: %d", len(store.batches))
	}
	if store.batches[0].Status != constant.BatchProcessing {
		t.Errorf("in-flight batch must stay processing, got %s", store.batches[0].Status)
	}

	close(store.commitRelease)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if store.batches[0].Status != constant.BatchCompleted {
		t.Errorf("tick should complete its batch after release: %s", store.batches[0].Status)
	}
	if store.balances[100].StringFixed(2) != "10.00" {
		t.Errorf("entry credited wrong amount: %v", store.balances)
	}

	// 锁已释放，后续手动触发正常通过（无待结算记录，不开批次）
	if err := sched.RunManual(777); err != nil {
		t.Fatal(err)
	}
}

func TestTick_BalancesReconcileWithSettledEntries(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.Local)
	store := newMemStore()
	sched := newTestScheduler(store, now, &recordPub{})

	// 多轮 tick 间穿插新入待结算记录，期间注入一次提交失败
	amounts := []string{"3.21", "0.07", "155.00", "9.99", "42.42", "1.00"}
	store.failCommits = 1
	for i, a := range amounts {
		store.addApproved(uint64(i+1), uint64(100+i%3), a)
		_ = sched.Tick()
	}
	_ = sched.Tick()

	wantTotal := decimal.Zero
	for _, a := range store.settled {
		wantTotal = wantTotal.Add(a)
	}
	gotTotal := decimal.Zero
	for _, b := range store.balances {
		gotTotal = gotTotal.Add(b)
	}
	if !gotTotal.Equal(wantTotal) {
		t.Errorf("balances %s != settled entries %s", gotTotal, wantTotal)
	}
	if len(store.settled) != len(amounts) {
		t.Errorf("all entries should eventually settle: %d/%d", len(store.settled), len(amounts))
	}
}
