package wallet

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// 钱包地址在本系统中仅作为身份键使用，不发起任何链上交互。

var ErrInvalidAddress = errors.New("invalid wallet address")

// IsValid 校验是否为合法的 0x 开头十六进制地址
func IsValid(addr string) bool {
	return common.IsHexAddress(addr)
}

// Normalize 严格校验并归一化为 EIP-55 大小写格式。
// 管理端守卫使用：保证同一地址的不同大小写写法落到同一条角色记录上。
func Normalize(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", ErrInvalidAddress
	}
	return common.HexToAddress(addr).Hex(), nil
}

// Canonical 尽力归一化：合法的十六进制地址转为 EIP-55 格式，
// 其余原样返回（公开接口对钱包字符串不做强制格式要求）。
func Canonical(addr string) string {
	addr = strings.TrimSpace(addr)
	if common.IsHexAddress(addr) {
		return common.HexToAddress(addr).Hex()
	}
	return addr
}
