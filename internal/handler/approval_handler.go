package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mall-commission-api/internal/constant"
	"mall-commission-api/internal/dao"
	"mall-commission-api/internal/dto"
	mainmodel "mall-commission-api/internal/model/main"
	"mall-commission-api/internal/service"
	"mall-commission-api/internal/settlement"
	"mall-commission-api/internal/utils"
)

// ApprovalHandler 管理端：审核、批次查询、手动结算
type ApprovalHandler struct {
	approval  *service.ApprovalService
	entries   *service.CommissionService
	scheduler *settlement.Scheduler
	batchDao  *dao.BatchDao
}

func NewApprovalHandler(approval *service.ApprovalService, entries *service.CommissionService,
	scheduler *settlement.Scheduler) *ApprovalHandler {
	return &ApprovalHandler{
		approval:  approval,
		entries:   entries,
		scheduler: scheduler,
		batchDao:  dao.NewBatchDao(),
	}
}

// Approve 单条与批量共用：ids 长度为 1 即单条
func (h *ApprovalHandler) Approve(c *gin.Context) {
	var req dto.ApproveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	result := h.approval.Approve(req.IDs, req.Operator)
	c.JSON(http.StatusOK, utils.Success(result))
}

func (h *ApprovalHandler) Reject(c *gin.Context) {
	var req dto.RejectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeRejectNeedReason))
		return
	}
	result := h.approval.Reject(req.IDs, req.Operator, req.Reason)
	c.JSON(http.StatusOK, utils.Success(result))
}

// ListEntries 按状态分页
func (h *ApprovalHandler) ListEntries(c *gin.Context) {
	status := constant.EntryStatus(c.Query("status"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	list, total, err := h.entries.ListEntries(status, page, size)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{
		"total": total,
		"list":  toEntryVOs(list),
	}))
}

func (h *ApprovalHandler) GetEntry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	entry, err := h.entries.GetEntry(id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, utils.Error(constant.CodeEntryNotFound))
		return
	}
	vos := toEntryVOs([]mainmodel.CommissionEntry{*entry})
	c.JSON(http.StatusOK, utils.Success(vos[0]))
}

// ListBatches 结算批次列表
func (h *ApprovalHandler) ListBatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	list, total, err := h.batchDao.List(page, size)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	vos := make([]dto.BatchVO, 0, len(list))
	for _, b := range list {
		vos = append(vos, dto.BatchVO{
			ID:               strconv.FormatUint(b.ID, 10),
			BatchNo:          b.BatchNo,
			PeriodStart:      b.PeriodStart,
			PeriodEnd:        b.PeriodEnd,
			Status:           string(b.Status),
			EntryCount:       b.EntryCount,
			BeneficiaryCount: b.BeneficiaryCount,
			TotalAmount:      b.TotalAmount.StringFixed(2),
			OperatorID:       b.OperatorID,
			StartedAt:        b.StartedAt,
			CompletedAt:      b.CompletedAt,
			ErrorMessage:     b.ErrorMessage,
		})
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{"total": total, "list": vos}))
}

// RunSettlement 手动触发一轮结算，批次记录操作人
func (h *ApprovalHandler) RunSettlement(c *gin.Context) {
	var req dto.ManualSettleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
		return
	}
	if err := h.scheduler.RunManual(req.Operator); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}
