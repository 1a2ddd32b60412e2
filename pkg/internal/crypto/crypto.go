// Package crypto 提供文件字节的静态加密与文件夹口令哈希.
//
// 文件内容使用 AES-256-GCM 加密后才写入 blob 存储，密文格式为
// nonce || ciphertext || tag，解密时认证失败返回 ErrAuthenticationFailed.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/yeisme/sharevault/pkg/configs"
	nlog "github.com/yeisme/sharevault/pkg/log"
)

// KeySize AES-256 密钥长度（字节）.
const KeySize = 32

var (
	// ErrAuthenticationFailed 表示密文被篡改或密钥不匹配.
	ErrAuthenticationFailed = errors.New("crypto: authentication failed")
	// ErrInvalidKey 表示主密钥缺失或长度不合法.
	ErrInvalidKey = errors.New("crypto: invalid master key")
)

// Cipher 封装 AEAD，加解密文件字节.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher 使用 32 字节密钥创建加密器.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidKey, KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// NewCipherFromConfig 从全局配置加载主密钥创建加密器.
//
// 生产模式下缺失或非法的主密钥直接报错；debug 模式下允许生成一次性
// 随机密钥，仅用于本地开发，重启后旧密文不可解.
func NewCipherFromConfig() (*Cipher, error) {
	cfg := configs.GetConfig()

	if cfg.Crypto.MasterKey == "" {
		if !cfg.Server.Debug {
			return nil, fmt.Errorf("%w: master key is required", ErrInvalidKey)
		}

		key := make([]byte, KeySize)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate throwaway key: %w", err)
		}

		nlog.Logger().Warn().Msg("crypto master key missing, using throwaway key (debug only)")

		return NewCipher(key)
	}

	key, err := base64.StdEncoding.DecodeString(cfg.Crypto.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("%w: not valid base64: %v", ErrInvalidKey, err)
	}

	return NewCipher(key)
}

// Encrypt 加密明文，输出 nonce || ciphertext || tag.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt 解密 Encrypt 产出的密文.
func (c *Cipher) Decrypt(data []byte) ([]byte, error) {
	if len(data) < c.aead.NonceSize() {
		return nil, ErrAuthenticationFailed
	}

	nonce, ciphertext := data[:c.aead.NonceSize()], data[c.aead.NonceSize():]

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}
