package store

// 注意：此包只包含实现，接口定义在 core 包。
// 使用 core.Store 和 core.KeyValueStore 接口。
//
// 选型：
//   - MemoryStore：测试/原型，支持 TTL 与 zset
//   - FileStore：单用户桌面部署，JSON 文件落盘（模型/库存/热度）
//   - RedisStore：服务化部署，点击热度用原生 zset
//
// 示例：
//   var s core.Store = NewFileStore("data")
//   var kv core.KeyValueStore = NewMemoryStore()
