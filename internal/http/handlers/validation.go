package handlers

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/HariStrange/drive-Vault/domain"
)

var registerOnce sync.Once

// RegisterValidators adds the recruitrole tag to gin's validator
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("recruitrole", func(fl validator.FieldLevel) bool {
			return domain.IsSelfServiceRole(fl.Field().String())
		})
	})
}

// bindJSON decodes the body into req. On failure it writes a 400 with
// missingMsg, or the role message when only the role was rejected.
func bindJSON(c *gin.Context, req interface{}, missingMsg string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "recruitrole" {
				badRequest(c, publicMessage(domain.ErrInvalidRole))
				return false
			}
		}
	}
	badRequest(c, missingMsg)
	return false
}
