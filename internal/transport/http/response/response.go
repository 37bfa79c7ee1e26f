package response

// Envelope REST 响应外壳：成功时 {<key>: payload}，失败时 {"error": {<标题>: <说明>}}
type Envelope map[string]any

// OK 成功响应，key 描述载荷（cafes / cafe / response / success ...）
func OK(key string, payload any) Envelope {
	if payload == nil {
		payload = struct{}{}
	}
	return Envelope{key: payload}
}

// Error 失败响应，标题按 status 取默认值
func Error(status int, msg any) Envelope {
	return Titled(TitleOf(status), msg)
}

// Titled 自定义标题；msg 可以是字符串，也可以是字段错误表
func Titled(title string, msg any) Envelope {
	return Envelope{"error": map[string]any{title: msg}}
}
