// Package app is the light-switch web application served by cmd/lightserver.
package app

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xpwu/go-log/log"

	"github.com/xaitan80/picohttp/internal/bufwriter"
	"github.com/xaitan80/picohttp/internal/light"
	"github.com/xaitan80/picohttp/internal/request"
	"github.com/xaitan80/picohttp/internal/response"
)

//go:embed web/index.html
var indexHTML []byte

const notFoundPage = `
<!DOCTYPE html>
<html>
    <body>
        <h1>The url %s was not found.</h1>
    </body>
</html>
`

// Status is the body of /light_status.
type Status struct {
	LightStatus bool `json:"light_status"`
}

// Handler routes requests for the light switch.
type Handler struct {
	light *light.State
}

func NewHandler(state *light.State) *Handler {
	return &Handler{light: state}
}

func (h *Handler) HandleRequest(ctx context.Context, r *request.Request, scratch []byte) (response.Response, error) {
	_, logger := log.WithCtx(ctx)

	switch string(r.Path) {
	case "/":
		return response.HTML(response.StatusOK, indexHTML), nil

	case "/post_test":
		if r.Method != request.MethodPost {
			return response.HTML(response.StatusBadRequest, []byte("Only POST method is allowed")), nil
		}
		logger.Debug(fmt.Sprintf("received body: %q", r.Body))
		return response.HTML(response.StatusOK, []byte("Received body")), nil

	case "/light_status":
		w := bufwriter.New(scratch)
		b, err := json.Marshal(Status{LightStatus: h.light.On()})
		if err == nil {
			_, err = w.Write(b)
		}
		if err != nil {
			logger.Warning(fmt.Sprintf("encode light status: %v", err))
			return response.HTML(response.StatusInternalServerError, []byte("Error serializing json")), nil
		}
		return response.JSON(response.StatusOK, w.Bytes()), nil

	case "/on":
		return h.set(ctx, true, "Light is on")

	case "/off":
		return h.set(ctx, false, "Light is off")

	default:
		body, err := bufwriter.Format(scratch, notFoundPage, r.Path)
		if err != nil {
			return response.Response{}, fmt.Errorf("format not found page: %w", err)
		}
		return response.HTML(response.StatusNotFound, body), nil
	}
}

func (h *Handler) set(ctx context.Context, on bool, msg string) (response.Response, error) {
	if err := h.light.Set(ctx, on); err != nil {
		_, logger := log.WithCtx(ctx)
		logger.Error(err)
		return response.HTML(response.StatusServiceUnavailable, []byte("Light did not respond")), nil
	}
	return response.HTML(response.StatusOK, []byte(msg)), nil
}
