package service

import (
	"encoding/json"
	"fmt"
	"time"

	"mall-commission-api/internal/cache"
	"mall-commission-api/internal/clawback"
	"mall-commission-api/internal/commission"
	"mall-commission-api/internal/config"
	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dao"
	"mall-commission-api/internal/dto"
	"mall-commission-api/internal/idgen"
	"mall-commission-api/internal/logger"
	mainmodel "mall-commission-api/internal/model/main"
	"mall-commission-api/internal/pricing"
	"mall-commission-api/internal/utils"
)

const summaryKeyFmt = "commission:summary:%d"

// CommissionService 订单侧两个触发点的入口：发货计佣与退款冲正
type CommissionService struct {
	entryDao   *dao.CommissionDao
	productDao *dao.ProductDao
	balanceDao *dao.BalanceDao
	calc       *commission.Calculator
	claw       *clawback.Engine
	cache      cache.Cache
}

func NewCommissionService(calc *commission.Calculator, claw *clawback.Engine,
	balanceDao *dao.BalanceDao, c cache.Cache) *CommissionService {
	return &CommissionService{
		entryDao:   dao.NewCommissionDao(),
		productDao: dao.NewProductDao(),
		balanceDao: balanceDao,
		calc:       calc,
		claw:       claw,
		cache:      c,
	}
}

// RecordShipmentCommission 发货确认计佣。订单侧按订单项恰好调用
// 一次；重复调用命中已存在的记录原样返回，不产生新行。
func (s *CommissionService) RecordShipmentCommission(req dto.ShipmentCommissionReq) ([]mainmodel.CommissionEntry, error) {
	product, err := s.productDao.GetProduct(req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, constant.NewError(constant.CodeProductNotFound)
	}
	var sku *mainmodel.ProductSku
	if req.SkuID != nil {
		sku, err = s.productDao.GetSku(*req.SkuID)
		if err != nil {
			return nil, err
		}
		if sku == nil {
			return nil, constant.NewError(constant.CodeSkuNotFound)
		}
	}

	// 佣金基数用买家角色对应的瀑布价，与下单口径一致
	price, err := pricing.ResolvePrice(product, sku, constant.RoleLevel(req.Buyer.RoleLevel))
	if err != nil {
		return nil, err
	}

	res, err := s.calc.Calculate(commission.OrderItem{
		OrderID:     req.OrderID,
		OrderItemID: req.OrderItemID,
		Price:       price,
		Quantity:    req.Quantity,
	}, req.Buyer, req.Parent, req.Grandparent, req.ShippedAt)
	if err != nil {
		return nil, err
	}
	for i := range res.Entries {
		res.Entries[i].ID = idgen.NewFrom("entry")
		res.Entries[i].Remark = req.Remark
	}

	entries, created, err := s.entryDao.InsertBatch(req.OrderItemID, res.Entries)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Ledger.Infof("订单项 %d 计佣 %d 条, 合计 %s",
			req.OrderItemID, len(entries), res.Total.StringFixed(2))
		for _, e := range entries {
			s.invalidateSummary(e.BeneficiaryUID)
		}
	}
	return entries, nil
}

// ReverseOrderItemCommission 退款审批通过后的冲正
func (s *CommissionService) ReverseOrderItemCommission(req dto.ReverseCommissionReq) ([]mainmodel.CommissionEntry, error) {
	reason := req.Reason
	if reason == "" {
		reason = "订单项退款冲正"
	}
	entries, err := s.entryDao.ListByOrderItem(req.OrderItemID)
	if err != nil {
		return nil, err
	}
	clawbacks, err := s.claw.Reverse(req.OrderItemID, reason)
	for _, e := range entries {
		s.invalidateSummary(e.BeneficiaryUID)
	}
	return clawbacks, err
}

// Summary 受益人佣金汇总，缓存读穿
func (s *CommissionService) Summary(uid uint64) (dto.SummaryVO, error) {
	key := fmt.Sprintf(summaryKeyFmt, uid)
	if cached, ok := s.cache.Get(key); ok {
		var vo dto.SummaryVO
		if err := jsonUnmarshal(cached, &vo); err == nil {
			return vo, nil
		}
	}

	sums, err := s.entryDao.SumByUID(uid)
	if err != nil {
		return dto.SummaryVO{}, err
	}
	balance, err := s.balanceDao.GetBalance(uid)
	if err != nil {
		return dto.SummaryVO{}, err
	}

	vo := dto.SummaryVO{
		UID: uid, Frozen: "0.00", Pending: "0.00", Approved: "0.00", Settled: "0.00",
		Balance: balance.StringFixed(2),
	}
	for _, s := range sums {
		switch s.Status {
		case constant.EntryFrozen:
			vo.Frozen = s.Total.StringFixed(2)
		case constant.EntryPendingApproval:
			vo.Pending = s.Total.StringFixed(2)
		case constant.EntryApproved:
			vo.Approved = s.Total.StringFixed(2)
		case constant.EntrySettled:
			vo.Settled = s.Total.StringFixed(2)
		}
	}

	ttl := time.Duration(config.C.Cache.TTLSeconds) * time.Second
	s.cache.Set(key, utils.MapToJSON(vo), ttl)
	return vo, nil
}

// GetEntry 单条查询
func (s *CommissionService) GetEntry(id uint64) (*mainmodel.CommissionEntry, error) {
	return s.entryDao.GetByID(id)
}

// ListEntries 按状态分页
func (s *CommissionService) ListEntries(status constant.EntryStatus, page, size int) ([]mainmodel.CommissionEntry, int64, error) {
	return s.entryDao.ListByStatus(status, page, size)
}

func (s *CommissionService) invalidateSummary(uid uint64) {
	s.cache.Del(fmt.Sprintf(summaryKeyFmt, uid))
}

func jsonUnmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}
