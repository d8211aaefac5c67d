package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/domains/comment"
)

func parseListOptions(c *gin.Context) comment.ListOptions {
	return comment.OptionsFromQuery(c.Query("limit"), c.Query("skip"), c.Query("order"))
}

func isValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}
