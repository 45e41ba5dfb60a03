package httpx

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseIDParam — читает целочисленный path-параметр (:id и т.п.).
// Ошибка возвращается для нечисловых и неположительных значений.
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s param: %q", name, raw)
	}
	return id, nil
}
