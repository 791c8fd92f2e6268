package handler

import (
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
)

// paramId parses a positive int64 path parameter
func paramId(c *app.RequestContext, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
