package idgen

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	nodeMap sync.Map // map[string]*snowflake.Node
)

// InitNode 初始化指定名称的 Snowflake 节点
func InitNode(name string, nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("InitNode failed: %w", err)
	}
	nodeMap.Store(name, n)
	return nil
}

// NewFrom 生成指定节点的 ID
func NewFrom(name string) uint64 {
	val, ok := nodeMap.Load(name)
	if !ok {
		panic(fmt.Sprintf("snowflake node not initialized: %s", name))
	}
	return uint64(val.(*snowflake.Node).Generate().Int64())
}

// New 默认节点生成器（"default"）
func New() uint64 {
	return NewFrom("default")
}
