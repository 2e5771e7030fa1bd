package service

// Cipher 备份内容在上传前和下载后经过的变换钩子
// 默认实现为恒等变换，加密算法可在此替换
type Cipher interface {
	Encrypt(data []byte) ([]byte, error)
	Decrypt(data []byte) ([]byte, error)
}

// NopCipher 恒等变换
type NopCipher struct{}

func (NopCipher) Encrypt(data []byte) ([]byte, error) { return data, nil }

func (NopCipher) Decrypt(data []byte) ([]byte, error) { return data, nil }
