package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/eeuunnjjiinn/planner/internal/planner"
)

// RegisterValidations 向 gin 的 validator 引擎注册领域格式规则
// 在路由初始化时调用一次
func RegisterValidations(v *validator.Validate) error {
	// datekey：yyyy-MM-dd 零填充日期文本
	if err := v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
		return planner.ValidDateKey(fl.Field().String())
	}); err != nil {
		return err
	}

	// hhmm：HH:MM 当日时刻，允许空串（可选时间字段）
	return v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := planner.MinutesOfDay(s)
		return err == nil
	})
}
