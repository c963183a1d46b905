package server

import (
	_ "embed"
)

// pageHTML 原样返回给 GET / 的静态页面：采集按键向量，循环 POST 并把返回的像素数组画到 canvas 上
//
//go:embed web/index.html
var pageHTML []byte

// Page 返回静态页面内容
func Page() []byte { return pageHTML }
