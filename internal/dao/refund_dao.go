package dao

import (
	"mall-commission-api/internal/dal"
	mainmodel "mall-commission-api/internal/model/main"
)

// RefundDao 读订单侧维护的退款单，本引擎只读不写
type RefundDao struct{}

func NewRefundDao() *RefundDao { return &RefundDao{} }

// HasOpenRefund 订单项是否存在未完结退款
func (r *RefundDao) HasOpenRefund(orderItemID uint64) (bool, error) {
	var count int64
	err := dal.MainDB.Model(&mainmodel.RefundOrder{}).
		Where("order_item_id = ? AND status = ?", orderItemID, mainmodel.RefundOpen).
		Count(&count).Error
	return count > 0, err
}
