package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const MimeText = "text/plain; charset=utf-8"

// LatestLimit 题目列表 latest=true 时返回的条数
const LatestLimit = 10
