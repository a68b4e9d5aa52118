package util

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// InitSnowflake 初始化雪花算法节点（进程启动时调用一次）。
func InitSnowflake(nodeId int64) {
	n, err := snowflake.NewNode(nodeId)
	if err != nil {
		panic(fmt.Sprintf("init snowflake failed: %v", err))
	}
	node = n
}

// GenID 生成全局唯一 int64 ID。
func GenID() int64 {
	return node.Generate().Int64()
}

// GenIDString 生成全局唯一字符串 ID。
func GenIDString() string {
	return node.Generate().String()
}

// GenPrefixedID 生成带业务前缀的 ID，如 post_1234567890。
// 前缀仅为可读性服务，唯一性由雪花 ID 保证。
func GenPrefixedID(prefix string) string {
	return prefix + "_" + node.Generate().String()
}
