package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dto"
	mainmodel "mall-commission-api/internal/model/main"
	"mall-commission-api/internal/service"
	"mall-commission-api/internal/utils"
)

type CommissionHandler struct {
	svc *service.CommissionService
}

func NewCommissionHandler(svc *service.CommissionService) *CommissionHandler {
	return &CommissionHandler{svc: svc}
}

// RecordShipment 订单侧发货确认触发
func (h *CommissionHandler) RecordShipment(c *gin.Context) {
	var req dto.ShipmentCommissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	entries, err := h.svc.RecordShipmentCommission(req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(toEntryVOs(entries)))
}

// ReverseCommission 订单侧退款审批通过触发
func (h *CommissionHandler) ReverseCommission(c *gin.Context) {
	var req dto.ReverseCommissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	clawbacks, err := h.svc.ReverseOrderItemCommission(req)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(toEntryVOs(clawbacks)))
}

// Summary 受益人佣金汇总
func (h *CommissionHandler) Summary(c *gin.Context) {
	uid, err := strconv.ParseUint(c.Param("uid"), 10, 64)
	if err != nil || uid == 0 {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	vo, err := h.svc.Summary(uid)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(vo))
}

func toEntryVOs(entries []mainmodel.CommissionEntry) []dto.EntryVO {
	vos := make([]dto.EntryVO, 0, len(entries))
	for _, e := range entries {
		vo := dto.EntryVO{
			ID:             strconv.FormatUint(e.ID, 10),
			OrderID:        strconv.FormatUint(e.OrderID, 10),
			OrderItemID:    strconv.FormatUint(e.OrderItemID, 10),
			Tier:           string(e.Tier),
			BeneficiaryUID: e.BeneficiaryUID,
			Amount:         e.Amount.StringFixed(2),
			Status:         string(e.Status),
			RefundDeadline: e.RefundDeadline,
			AvailableAt:    e.AvailableAt,
			ApprovedBy:     e.ApprovedBy,
			ApprovedAt:     e.ApprovedAt,
			SettledAt:      e.SettledAt,
			Remark:         e.Remark,
			CreateTime:     e.CreateTime,
		}
		if e.OriginalEntryID != nil {
			vo.OriginalEntryID = strconv.FormatUint(*e.OriginalEntryID, 10)
		}
		vos = append(vos, vo)
	}
	return vos
}

// writeDomainError 业务错误到统一响应的映射
func writeDomainError(c *gin.Context, err error) {
	var ve *constant.ValidationError
	var ste *constant.StateTransitionError
	var ire *constant.ImmutableRecordError
	var cce *constant.ConcurrencyConflictError
	var ce constant.Error
	switch {
	case errors.As(err, &ve):
		code := constant.CodeInvalidParams
		switch ve.Field {
		case "price":
			code = constant.CodePriceBaseMissing
		case "role_level":
			code = constant.CodeRoleInvalid
		}
		c.JSON(http.StatusBadRequest, utils.ErrorWithData(code, ve.Error()))
	case errors.As(err, &ire):
		c.JSON(http.StatusConflict, utils.Error(constant.CodeEntryImmutable))
	case errors.As(err, &ste):
		c.JSON(http.StatusConflict, utils.Error(constant.CodeEntryIllegalState))
	case errors.As(err, &cce):
		c.JSON(http.StatusConflict, utils.Error(constant.CodeEntryConcurrentEdit))
	case errors.As(err, &ce):
		c.JSON(http.StatusOK, utils.Error(ce.Code()))
	default:
		c.JSON(http.StatusInternalServerError, utils.Error(constant.CodeSystemError))
	}
}
