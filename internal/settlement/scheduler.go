package settlement

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dto"
	"mall-commission-api/internal/event"
	mainmodel "mall-commission-api/internal/model/main"
)

// Scheduler 结算调度器。晋升与批次入账的唯一写者；
// Tick 是确定性的入口，Start 只是按配置间隔反复调 Tick。
type Scheduler struct {
	store    Store
	clock    Clock
	pub      event.Publisher
	log      *logrus.Logger
	interval time.Duration
	promoteN int

	mu sync.Mutex // 同一时刻至多一轮在跑
}

func NewScheduler(store Store, clock Clock, pub event.Publisher,
	log *logrus.Logger, intervalMin, promoteBatchSize int) *Scheduler {
	if clock == nil {
		clock = SystemClock()
	}
	if pub == nil {
		pub = event.NopPublisher{}
	}
	return &Scheduler{
		store:    store,
		clock:    clock,
		pub:      pub,
		log:      log,
		interval: time.Duration(intervalMin) * time.Minute,
		promoteN: promoteBatchSize,
	}
}

// Start 周期运行，ctx 取消即停
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.log.Infof("结算调度启动, 间隔 %v", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("结算调度退出")
			return
		case <-ticker.C:
			if err := s.Tick(); err != nil {
				s.log.Errorf("结算 tick 失败: %v", err)
			}
		}
	}
}

// Tick 一轮调度：崩溃恢复 -> 晋升 -> 批次结算。
// 任何失败都留待下一轮，绝不在事务中途重试。
func (s *Scheduler) Tick() error {
	return s.run(nil)
}

// RunManual 手动触发，批次记录操作人
func (s *Scheduler) RunManual(operator uint64) error {
	return s.run(&operator)
}

// run 一轮全程持锁。手动触发撞上进行中的 tick 时直接拒绝：
// 崩溃恢复只能针对真正的遗留批次，不能把在途批次误判成僵尸。
func (s *Scheduler) run(operator *uint64) error {
	if !s.mu.TryLock() {
		return constant.NewError(constant.CodeSettlementProcessing)
	}
	defer s.mu.Unlock()

	if err := s.recoverStale(); err != nil {
		return err
	}
	if err := s.promote(); err != nil {
		return err
	}
	return s.settle(operator)
}

// recoverStale 上次进程崩溃可能留下 processing 批次。入账事务是
// 原子的，批次没 completed 就说明什么都没提交：置 failed，记录
// 保持 approved，由本轮批次直接收编，不会二次入账。
func (s *Scheduler) recoverStale() error {
	stale, err := s.store.StaleProcessingBatch()
	if err != nil {
		return err
	}
	if stale == nil {
		return nil
	}
	s.log.Warnf("发现遗留 processing 批次 %s, 置为 failed", stale.BatchNo)
	if err := s.store.MarkBatchFailed(stale.ID, "crash recovery: batch left processing"); err != nil {
		return err
	}
	s.publishFailed(stale, "crash recovery: batch left processing")
	return nil
}

func (s *Scheduler) promote() error {
	now := s.clock.Now()
	promoted, err := s.store.PromoteDue(now, s.promoteN)
	if err != nil {
		return err
	}
	if len(promoted) > 0 {
		s.log.Infof("晋升 %d 条佣金记录至待审核", len(promoted))
	}
	for i := range promoted {
		s.emitTransition(&promoted[i], constant.EntryFrozen, constant.EntryPendingApproval)
	}
	return nil
}

func (s *Scheduler) settle(operator *uint64) error {
	items, err := s.store.ApprovedItems()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	now := s.clock.Now()
	plan := Build(items)

	batch, err := s.store.CreateBatch(now, now.Add(-s.interval), operator)
	if err != nil {
		return err
	}

	if err := s.store.CommitPlan(batch, plan, now); err != nil {
		s.log.Errorf("批次 %s 结算失败: %v", batch.BatchNo, err)
		if mErr := s.store.MarkBatchFailed(batch.ID, err.Error()); mErr != nil {
			s.log.Errorf("批次 %s 置失败状态出错: %v", batch.BatchNo, mErr)
		}
		s.publishFailed(batch, err.Error())
		return err
	}

	s.log.Infof("批次 %s 结算完成: %d 条 / %d 人 / 合计 %s",
		batch.BatchNo, plan.EntryCount, len(plan.Groups), plan.Total.StringFixed(2))

	_ = s.pub.Publish(event.KeySettlementCompleted, dto.SettlementCompletedEvent{
		BatchID:          batch.ID,
		BatchNo:          batch.BatchNo,
		EntryCount:       plan.EntryCount,
		BeneficiaryCount: len(plan.Groups),
		TotalAmount:      plan.Total.StringFixed(2),
		Ts:               now.Unix(),
	})
	return nil
}

func (s *Scheduler) emitTransition(e *mainmodel.CommissionEntry, from, to constant.EntryStatus) {
	_ = s.pub.Publish(event.KeyStateChanged, dto.CommissionStateChangedEvent{
		EntryID:        e.ID,
		OrderID:        e.OrderID,
		OrderItemID:    e.OrderItemID,
		BeneficiaryUID: e.BeneficiaryUID,
		Tier:           string(e.Tier),
		From:           string(from),
		To:             string(to),
		Amount:         e.Amount.StringFixed(2),
		Ts:             s.clock.Now().Unix(),
	})
}

func (s *Scheduler) publishFailed(b *mainmodel.SettlementBatch, msg string) {
	_ = s.pub.Publish(event.KeySettlementFailed, dto.SettlementFailedEvent{
		BatchID: b.ID,
		BatchNo: b.BatchNo,
		Error:   msg,
		Ts:      s.clock.Now().Unix(),
	})
}
