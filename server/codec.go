package server

import (
	"bytes"
	"strconv"
)

// Route 请求分发结果
type Route int

const (
	RouteUnknown Route = iota // 其它请求：返回空 body 的 200
	RoutePage                 // GET /：返回静态页面
	RouteFrame                // POST /：推进模拟并返回一帧
)

func (r Route) String() string {
	switch r {
	case RoutePage:
		return "page"
	case RouteFrame:
		return "frame"
	default:
		return "unknown"
	}
}

var (
	crlf         = []byte("\r\n")
	headerEnd    = []byte("\r\n\r\n")
	pagePrefix   = []byte("GET / ")
	framePrefix  = []byte("POST / ")
	postMethod   = []byte("POST")
	responseHead = []byte("HTTP/1.1 200 OK\r\nContent-Type: text/html\r\nContent-Length: ")
)

// Request 从原始字节中解析出的最小请求描述，只识别请求行与 body
type Request struct {
	Line   []byte // 第一个 CRLF 之前的内容
	Method string
	Target string
	Body   []byte // 仅 POST 请求有值，引用原始缓冲
	Route  Route
}

// ParseRequest 解析一次读取得到的字节。不会累积多次读取，也不读取任何 header。
func ParseRequest(raw []byte) Request {
	var req Request
	req.Line = raw
	if i := bytes.Index(raw, crlf); i >= 0 {
		req.Line = raw[:i]
	}

	fields := bytes.Fields(req.Line)
	if len(fields) > 0 {
		req.Method = string(fields[0])
	}
	if len(fields) > 1 {
		req.Target = string(fields[1])
	}

	if bytes.HasPrefix(req.Line, postMethod) {
		if i := bytes.Index(raw, headerEnd); i >= 0 {
			req.Body = raw[i+len(headerEnd):]
		}
	}

	switch {
	case bytes.HasPrefix(req.Line, pagePrefix):
		req.Route = RoutePage
	case bytes.HasPrefix(req.Line, framePrefix):
		req.Route = RouteFrame
	default:
		req.Route = RouteUnknown
	}
	return req
}

// BuildResponse 固定返回 200 OK / text/html，Content-Length 始终由 body 计算
func BuildResponse(body []byte) []byte {
	length := strconv.Itoa(len(body))
	out := make([]byte, 0, len(responseHead)+len(length)+2*len(crlf)+len(body))
	out = append(out, responseHead...)
	out = append(out, length...)
	out = append(out, crlf...)
	out = append(out, crlf...)
	out = append(out, body...)
	return out
}
