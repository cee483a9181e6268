package settlement

import "time"

// Clock 可注入时钟，测试不等真实墙钟
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock 生产时钟
func SystemClock() Clock { return systemClock{} }
