package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	authutils "request-flow-backend/lib/utils/auth-utils"
)

const (
	TagPid       = "pid"
	TagRequestID = "trace_id"
	TagStatus    = "status"
	TagLatency   = "latency"
	TagMethod    = "method"
	TagPath      = "path"
	TagIP        = "ip"
	TagUserID    = "user_id"
	TagReqBody   = "req_body"
	TagResBody   = "res_body"
)

const requestIDHeader = "X-Request-Id"

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag значение поля лога для тега
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} { return d.pid },
		TagRequestID: func(c *fiber.Ctx, d *data) interface{} {
			return c.GetRespHeader(requestIDHeader)
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} { return c.Response().StatusCode() },
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} { return c.Method() },
		TagPath:   func(c *fiber.Ctx, d *data) interface{} { return c.Path() },
		TagIP:     func(c *fiber.Ctx, d *data) interface{} { return c.IP() },
		TagUserID: func(c *fiber.Ctx, d *data) interface{} {
			sub, _ := authutils.GetClaims(c)["sub"].(string)
			return sub
		},
		TagReqBody: func(c *fiber.Ctx, d *data) interface{} {
			return cut(string(c.Body()), cfg.MaxBodyLen)
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			if c.Response().StatusCode() < fiber.StatusBadRequest {
				return ""
			}
			return cut(string(c.Response().Body()), cfg.MaxBodyLen)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

// ensureRequestID берёт идентификатор запроса из заголовка или создаёт новый
func ensureRequestID(c *fiber.Ctx) {
	id := c.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDHeader, id)
}

func cut(value string, maxLen int) string {
	if maxLen <= 0 || len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "..."
}
