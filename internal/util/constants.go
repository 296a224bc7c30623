package util

// 附件存储类型
const (
	StorageLocal = "local"
	StorageMinio = "minio"
)
