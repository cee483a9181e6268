package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"mall-commission-api/internal/cache"
	"mall-commission-api/internal/clawback"
	"mall-commission-api/internal/commission"
	"mall-commission-api/internal/config"
	"mall-commission-api/internal/dal"
	"mall-commission-api/internal/dao"
	"mall-commission-api/internal/handler"
	"mall-commission-api/internal/idgen"
	"mall-commission-api/internal/ledger"
	"mall-commission-api/internal/logger"
	"mall-commission-api/internal/middleware"
	"mall-commission-api/internal/mq"
	"mall-commission-api/internal/service"
	"mall-commission-api/internal/settlement"
)

func main() {
	// load config env（含冻结期 >= 退款窗口的启动校验）
	config.Init()
	logger.Init()

	// init infra
	dal.InitMainDB()
	if config.C.Cache.Driver == "redis" {
		dal.InitRedis()
	}
	dal.InitRabbitMQ()

	// idgen
	idgen.InitFromEnv()

	// 组装佣金引擎
	rates := commission.NewRateTable(config.C.Commission.Rates)
	calc := commission.NewCalculator(rates, config.C.Commission.FreezeDays)
	pub := mq.NewAmqpPublisher()
	lg := ledger.New(pub)
	cacheImpl := cache.New()

	entryDao := dao.NewCommissionDao()
	batchDao := dao.NewBatchDao()
	balanceDao := dao.NewBalanceDao(config.C.Commission.LogShards)
	claw := clawback.New(clawback.NewGormStore(entryDao, balanceDao, lg), lg)

	store := settlement.NewGormStore(entryDao, batchDao, balanceDao, dao.NewRefundDao(), lg)
	scheduler := settlement.NewScheduler(store, settlement.SystemClock(), pub,
		logger.Settlement, config.C.Commission.SettleIntervalMin, config.C.Commission.PromoteBatchSize)

	commissionSvc := service.NewCommissionService(calc, claw, balanceDao, cacheImpl)
	approvalSvc := service.NewApprovalService(lg, cacheImpl)

	// start background workers
	ctx := context.Background()
	go scheduler.Start(ctx)
	go mq.StartConsumers()

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover())

	ch := handler.NewCommissionHandler(commissionSvc)
	ah := handler.NewApprovalHandler(approvalSvc, commissionSvc, scheduler)

	v1 := r.Group("/api/v1", middleware.InternalAuth())
	{
		// 订单侧触发点
		v1.POST("/internal/commission/shipment", ch.RecordShipment)
		v1.POST("/internal/commission/reverse", ch.ReverseCommission)
		v1.GET("/commission/summary/:uid", ch.Summary)

		// 管理端
		v1.POST("/admin/entries/approve", ah.Approve)
		v1.POST("/admin/entries/reject", ah.Reject)
		v1.GET("/admin/entries", ah.ListEntries)
		v1.GET("/admin/entries/:id", ah.GetEntry)
		v1.GET("/admin/batches", ah.ListBatches)
		v1.POST("/admin/settlement/run", ah.RunSettlement)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
