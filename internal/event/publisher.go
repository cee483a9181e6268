package event

// 路由键
const (
	KeyStateChanged        = "commission.state_changed"
	KeySettlementCompleted = "settlement.completed"
	KeySettlementFailed    = "settlement.failed"
)

// Publisher 出站事件端口。状态机与调度器只依赖该接口，
// 具体投递（RabbitMQ）由 mq 包实现。
type Publisher interface {
	Publish(routingKey string, msg any) error
}

// NopPublisher 空实现，测试与单机裸跑时使用
type NopPublisher struct{}

func (NopPublisher) Publish(string, any) error { return nil }
