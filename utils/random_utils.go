package utils

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/google/uuid"
)

// RandomInt32 生成一个安全的随机32位整数
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}

// NewVisitorSeed 生成访客种子，范围 [1000, 1000999]。
// 种子只下发一次，之后由客户端 cookie 持久保存。
func NewVisitorSeed() int64 {
	n := int64(RandomInt32())
	if n < 0 {
		n = -n
	}
	return 1000 + n%1000000
}

// NewClientToken 生成匿名客户的身份令牌
func NewClientToken() string {
	return uuid.NewString()
}
