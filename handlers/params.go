package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ecodrive/apperror"
	"ecodrive/repository"
)

// fail records err for the error middleware and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		fail(c, apperror.Invalidf("Parâmetro '%s' inválido: %s", name, raw))
		return 0, false
	}
	return uint(id), true
}

// pageParams reads page and size, falling back to the defaults on junk input.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 0
	}
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		size = repository.DefaultPageSize
	}
	return repository.NormalizePage(page, size)
}

func requiredQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		fail(c, apperror.Invalidf("Parâmetro '%s' é obrigatório", name))
		return "", false
	}
	return v, true
}

const dateLayout = "2006-01-02"

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

// timeQuery parses an optional time parameter; ok is false after a parse failure. A bare
// date means its first instant, or its last one when endOfDay is set.
func timeQuery(c *gin.Context, name string, endOfDay bool) (t *time.Time, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, true
		}
	}
	if day, err := time.Parse(dateLayout, raw); err == nil {
		if endOfDay {
			day = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &day, true
	}
	fail(c, apperror.Invalidf("Parâmetro '%s' inválido: %s", name, raw))
	return nil, false
}

// period reads the mandatory inicio and fim parameters as an inclusive range.
func period(c *gin.Context) (time.Time, time.Time, bool) {
	inicio, ok := timeQuery(c, "inicio", false)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	fim, ok := timeQuery(c, "fim", true)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if inicio == nil || fim == nil {
		fail(c, apperror.Invalid("Parâmetros 'inicio' e 'fim' são obrigatórios"))
		return time.Time{}, time.Time{}, false
	}
	return *inicio, *fim, true
}

func floatQuery(c *gin.Context, name string, required bool) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		if required {
			fail(c, apperror.Invalidf("Parâmetro '%s' é obrigatório", name))
			return 0, false
		}
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fail(c, apperror.Invalidf("Parâmetro '%s' inválido: %s", name, raw))
		return 0, false
	}
	return v, true
}
