package mq

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/streadway/amqp"

	"mall-commission-api/internal/dal"
	"mall-commission-api/internal/dto"
	"mall-commission-api/internal/event"
	"mall-commission-api/internal/notify"
)

// StartConsumers 通知消费者：订阅佣金事件，结算失败转运维群告警，
// 状态迁移事件交由下游通知系统（此处仅落日志）。
func StartConsumers() {
	if dal.RabbitCh == nil {
		log.Println("RabbitMQ channel not initialized")
		return
	}
	msgs, err := dal.RabbitCh.Consume("commission_notify", "", false, false, false, false, nil)
	if err != nil {
		log.Printf("❌ consume commission_notify failed: %v", err)
		return
	}
	for d := range msgs {
		go handleNotify(d)
	}
}

func handleNotify(d amqp.Delivery) {
	switch d.RoutingKey {
	case event.KeySettlementFailed:
		var evt dto.SettlementFailedEvent
		if err := json.Unmarshal(d.Body, &evt); err != nil {
			log.Printf("❌ bad settlement.failed payload: %v", err)
			_ = d.Nack(false, false)
			return
		}
		chatID := os.Getenv("TELEGRAM_OPS_CHAT_ID")
		if chatID != "" {
			notify.NotifySendMsgToTG(chatID, fmt.Sprintf(
				"*结算批次失败*\n批次号: `%s`\n原因: %s", evt.BatchNo, evt.Error))
		}
	case event.KeySettlementCompleted:
		var evt dto.SettlementCompletedEvent
		if err := json.Unmarshal(d.Body, &evt); err == nil {
			log.Printf("[NOTIFY] 批次 %s 结算完成: %d 条/%d 人, 合计 %s",
				evt.BatchNo, evt.EntryCount, evt.BeneficiaryCount, evt.TotalAmount)
		}
	case event.KeyStateChanged:
		var evt dto.CommissionStateChangedEvent
		if err := json.Unmarshal(d.Body, &evt); err == nil {
			log.Printf("[NOTIFY] 佣金 %d: %s -> %s (uid=%d, %s)",
				evt.EntryID, evt.From, evt.To, evt.BeneficiaryUID, evt.Amount)
		}
	}
	_ = d.Ack(false)
}
