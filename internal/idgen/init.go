package idgen

import (
	"log"
	"os"
	"strconv"
)

// InitFromEnv 初始化各业务节点（支持多实例部署）。
// 佣金记录与结算批次分别用独立命名节点取号。
func InitFromEnv() {
	nodeIDStr := os.Getenv("SNOWFLAKE_NODE_ID")
	nodeID, err := strconv.ParseInt(nodeIDStr, 10, 64)
	if err != nil || nodeID < 0 || nodeID > 1023 {
		nodeID = 1
	}
	for _, name := range []string{"default", "entry", "batch"} {
		if err := InitNode(name, nodeID); err != nil {
			log.Fatalf("[IDGen] InitNode %s failed: %v", name, err)
		}
	}
	log.Printf("[IDGen] snowflake nodes initialized: nodeID=%d", nodeID)
}
