// Package view 页面模板（embed 进二进制）和渲染辅助。
package view

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.tmpl
var files embed.FS

// 评论正文来自富文本编辑器，只保留 UGC 白名单内的标签
var ugc = bluemonday.UGCPolicy()

// Sanitize 清洗后才允许原样输出
func Sanitize(s string) template.HTML {
	return template.HTML(ugc.Sanitize(s)) //nolint:gosec // 已清洗
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"safe": Sanitize,
		"dict": dict,
	}
}

// dict 给子模板传多个参数：dict "k1" v1 "k2" v2
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of args")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// New 解析全部模板，交给 gin.Engine.SetHTMLTemplate
func New() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.tmpl")
}

func MustNew() *template.Template {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}
