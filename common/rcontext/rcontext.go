package rcontext

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/glowbooth/media-export/common/config"
)

func Initial() RequestContext {
	return RequestContext{
		Context: context.Background(),
		Log:     logrus.WithFields(logrus.Fields{"nocontext": true}),
		Config:  *config.Get(),
		Request: nil,
	}.populate()
}

type RequestContext struct {
	context.Context

	// These are also stored on the context object itself
	Log     *logrus.Entry        // ex.logger
	Config  config.ServiceConfig // ex.serviceConfig
	Request *http.Request        // ex.request
}

func (c RequestContext) populate() RequestContext {
	c.Context = context.WithValue(c.Context, "ex.logger", c.Log)
	c.Context = context.WithValue(c.Context, "ex.serviceConfig", c.Config)
	c.Context = context.WithValue(c.Context, "ex.request", c.Request)
	return c
}

func (c RequestContext) ReplaceContext(ctx context.Context) RequestContext {
	return RequestContext{
		Context: ctx,
		Log:     c.Log,
		Config:  c.Config,
		Request: c.Request,
	}.populate()
}

func (c RequestContext) ReplaceLogger(log *logrus.Entry) RequestContext {
	ctx := context.WithValue(c.Context, "ex.logger", log)
	return RequestContext{
		Context: ctx,
		Log:     log,
		Config:  c.Config,
		Request: c.Request,
	}
}

func (c RequestContext) LogWithFields(fields logrus.Fields) RequestContext {
	return c.ReplaceLogger(c.Log.WithFields(fields))
}
