// bookcatalog 图书目录服务
//
// 子命令:
//
//	serve    启动HTTP服务(默认)
//	migrate  同步表结构
//	seed     写入演示数据
//	events   消费并打印图书事件(需要启用RabbitMQ)
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
