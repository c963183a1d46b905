package server

// KeyCount 客户端按键向量的长度（keyCode 0–255）
const KeyCount = 256

// 浏览器 KeyboardEvent.keyCode
const (
	KeyArrowLeft  = 37
	KeyArrowUp    = 38
	KeyArrowRight = 39
	KeyArrowDown  = 40
)

// KeyState 按 keyCode 索引的按下状态
type KeyState [KeyCount]bool

// DecodeKeyState 解析 POST 请求体：第 i 个字符为 '1' 表示 keyCode i 被按下。
// 超出请求体长度的下标一律视为未按下，其他字符同样视为未按下。
func DecodeKeyState(body []byte) KeyState {
	var ks KeyState
	n := len(body)
	if n > KeyCount {
		n = KeyCount
	}
	for i := 0; i < n; i++ {
		ks[i] = body[i] == '1'
	}
	return ks
}

// Pressed 越界的 keyCode 返回 false
func (ks *KeyState) Pressed(code int) bool {
	if code < 0 || code >= KeyCount {
		return false
	}
	return ks[code]
}
