package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/yoga-studio-admin/internal/validation"
	appErrors "github.com/noah-isme/yoga-studio-admin/pkg/errors"
)

func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return id, nil
}

func bindError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validation.Describe(message, err))
}
