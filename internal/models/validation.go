package models

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// hexColorPattern: ラベル色は "#RRGGBB" 形式のみ許可します (#RGB 短縮形は不可)。
var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// validate はサービス層用のバリデーターです。Ginのバインディングと同じ
// `binding` タグを読むため、ハンドラーを経由しないバッチ項目も
// 同一ルールで検証できます。
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	registerHexRGB(v)
	return v
}

// init はGin側のバリデーターにもカスタムルールを登録します。
// これによりc.ShouldBindJSON()でも hexrgb タグが有効になります。
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerHexRGB(v)
	}
}

func registerHexRGB(v *validator.Validate) {
	// RegisterValidationは不正なタグ名でのみエラーを返すため無視して問題ありません
	_ = v.RegisterValidation("hexrgb", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
}

// ValidationError はフィールド制約違反を表すエラーです。
// ハンドラー層はこのエラーを400として返します。
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

// Unwrap は元のエラーを返します。
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate は構造体のbindingタグ制約を検証します。
// 違反があればValidationErrorを返します。
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
