package response

import "net/http"

// 错误信封里的标题（{"error": {<标题>: <说明>}}）
const (
	TitleBadRequest   = "Bad request"
	TitleUnauthorized = "Unauthorized"
	TitleForbidden    = "Forbidden"
	TitleNotFound     = "Not found"
	TitleConflict     = "Conflict"
	TitleTooLarge     = "Payload too large"
	TitleTooMany      = "Too many requests"
	TitleServerError  = "Internal server error"
	TitleUnavailable  = "Service unavailable"
	TitleTimeout      = "Gateway timeout"
)

// TitleMap 用于集中管理 status - 标题
var TitleMap = map[int]string{
	http.StatusBadRequest:            TitleBadRequest,
	http.StatusUnauthorized:          TitleUnauthorized,
	http.StatusForbidden:             TitleForbidden,
	http.StatusNotFound:              TitleNotFound,
	http.StatusConflict:              TitleConflict,
	http.StatusRequestEntityTooLarge: TitleTooLarge,
	http.StatusTooManyRequests:       TitleTooMany,
	http.StatusInternalServerError:   TitleServerError,
	http.StatusServiceUnavailable:    TitleUnavailable,
	http.StatusGatewayTimeout:        TitleTimeout,
}

func TitleOf(status int) string {
	if t, ok := TitleMap[status]; ok {
		return t
	}
	return http.StatusText(status)
}
