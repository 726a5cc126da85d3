package logic

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// 用户提交的富文本统一经过 bluemonday 清洗后再入库
var (
	richTextPolicy  = bluemonday.UGCPolicy()
	plainTextPolicy = bluemonday.StrictPolicy()
)

// sanitizeRichText 清洗描述类字段，保留安全的富文本标签
func sanitizeRichText(s string) string {
	return strings.TrimSpace(richTextPolicy.Sanitize(s))
}

// sanitizePlainText 清洗纯文本字段，剥离全部标签
func sanitizePlainText(s string) string {
	return strings.TrimSpace(plainTextPolicy.Sanitize(s))
}
