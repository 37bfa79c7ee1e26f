// Package form 页面和 REST 表单的绑定与字段校验。不碰数据库。
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"cafe-directory/internal/domain"
)

// 下拉框的三个选项
const (
	ChoiceYes     = "Yes"
	ChoiceNo      = "No"
	ChoiceUnknown = "I don't know"
)

var Choices = []string{ChoiceYes, ChoiceNo, ChoiceUnknown}

// ClockLayout 入库格式，固定 7 个字符
const ClockLayout = "03:04PM"

// <input type="time"> 提交 15:04，部分浏览器带秒
var clockInputs = []string{"15:04", "15:04:05", ClockLayout}

// 注册到 gin 的默认校验器上，binding 标签里可以直接用 clock / amenity
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		panic("form: gin validator engine is not go-playground/validator")
	}
	v.RegisterTagNameFunc(fieldName)
	must(v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := parseClock(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("amenity", func(fl validator.FieldLevel) bool {
		return isChoice(fl.Field().String())
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// fieldName 错误里用表单字段名（form 标签），没有就退到 json 标签
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

type CafeForm struct {
	Name          string `form:"name" json:"name" binding:"required"`
	Location      string `form:"location" json:"location" binding:"required"`
	MapsURL       string `form:"maps_url" json:"maps_url" binding:"required,http_url"`
	ImageURL      string `form:"image_url" json:"image_url" binding:"required,http_url"`
	Open          string `form:"open" json:"open" binding:"required,clock"`
	Close         string `form:"close" json:"close" binding:"required,clock"`
	WiFi          string `form:"wifi" json:"wifi" binding:"omitempty,amenity"`
	Sockets       string `form:"sockets" json:"sockets" binding:"omitempty,amenity"`
	MountainViews string `form:"mountain_views" json:"mountain_views" binding:"omitempty,amenity"`
}

// NewCafeForm 空表单，三项设施默认“不知道”
func NewCafeForm() CafeForm {
	return CafeForm{WiFi: ChoiceUnknown, Sockets: ChoiceUnknown, MountainViews: ChoiceUnknown}
}

// WithDefaults 回显表单时补上未选的设施项
func (f CafeForm) WithDefaults() CafeForm {
	f.WiFi = orUnknown(f.WiFi)
	f.Sockets = orUnknown(f.Sockets)
	f.MountainViews = orUnknown(f.MountainViews)
	return f
}

// ToCafe 只能在校验通过后调用
func (f CafeForm) ToCafe() (*domain.Cafe, error) {
	open, err := FormatClock(f.Open)
	if err != nil {
		return nil, err
	}
	closing, err := FormatClock(f.Close)
	if err != nil {
		return nil, err
	}
	return &domain.Cafe{
		Name:          strings.TrimSpace(f.Name),
		Location:      strings.TrimSpace(f.Location),
		MapsURL:       strings.TrimSpace(f.MapsURL),
		ImageURL:      strings.TrimSpace(f.ImageURL),
		Open:          open,
		Close:         closing,
		WiFi:          ParseAmenity(orUnknown(f.WiFi)),
		Sockets:       ParseAmenity(orUnknown(f.Sockets)),
		MountainViews: ParseAmenity(orUnknown(f.MountainViews)),
	}, nil
}

type SignUpForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Name     string `form:"name" binding:"required"`
}

type LoginForm struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// ReviewForm 正文是富文本，渲染前再清洗
type ReviewForm struct {
	Body string `form:"body" binding:"required"`
}

type ContactForm struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Phone   string `form:"phone" binding:"required"`
	Message string `form:"message" binding:"required"`
}

// FormatClock "06:30" -> "06:30AM"，"21:00" -> "09:00PM"
func FormatClock(s string) (string, error) {
	t, err := parseClock(s)
	if err != nil {
		return "", err
	}
	return t.Format(ClockLayout), nil
}

func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range clockInputs {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("form: invalid time %q", s)
}

// ParseAmenity 只接受三个选项之一；其他输入说明绑定校验被绕过了，直接 panic
func ParseAmenity(choice string) domain.Amenity {
	switch choice {
	case ChoiceYes:
		return domain.AmenityYes
	case ChoiceNo:
		return domain.AmenityNo
	case ChoiceUnknown:
		return domain.AmenityUnknown
	}
	panic(fmt.Sprintf("form: unknown amenity choice %q", choice))
}

func isChoice(s string) bool {
	for _, c := range Choices {
		if s == c {
			return true
		}
	}
	return false
}

func orUnknown(s string) string {
	if s == "" {
		return ChoiceUnknown
	}
	return s
}

// FieldErrors 字段名 -> 提示语，用于在表单上逐项显示
type FieldErrors map[string]string

// FormKey 不属于某个字段的错误（重复、解析失败等）
const FormKey = "form"

var messages = map[string]string{
	"required": "This field is required.",
	"http_url": "Please provide a URL",
	"url":      "Please provide a URL",
	"email":    "Please provide a valid email address.",
	"clock":    "Please provide a valid time.",
	"amenity":  "Please choose Yes, No or I don't know.",
}

func ErrorsOf(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return FieldErrors{FormKey: "Invalid form submission."}
	}
	out := make(FieldErrors, len(ves))
	for _, fe := range ves {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Invalid value."
		}
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = msg
		}
	}
	return out
}
