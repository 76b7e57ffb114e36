package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/getsentry/sentry-go"
	"github.com/sebest/xff"
	"github.com/sirupsen/logrus"

	"github.com/glowbooth/media-export/common"
	"github.com/glowbooth/media-export/common/rcontext"
	"github.com/glowbooth/media-export/metrics"
	"github.com/glowbooth/media-export/util"
)

type handlerFn func(w http.ResponseWriter, r *http.Request, ctx rcontext.RequestContext, user UserInfo) interface{}

type handler struct {
	h      handlerFn
	action string
}

var requestCounter uint64

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestId := atomic.AddUint64(&requestCounter, 1)

	// Resolve the real client address when we're behind a proxy
	raddr := xff.GetRemoteAddr(r)
	if raddr == "" {
		raddr = r.RemoteAddr
	}
	host, _, err := net.SplitHostPort(raddr)
	if err != nil {
		host = raddr
	}

	log := logrus.WithFields(logrus.Fields{
		"method":      r.Method,
		"resource":    r.URL.Path,
		"remoteAddr":  host,
		"queryString": util.GetLogSafeQueryString(r),
		"requestId":   requestId,
	})
	log.Info("Received request")
	metrics.HttpRequests.With(map[string]string{"action": h.action, "method": r.Method}).Inc()

	ctx := rcontext.Initial().ReplaceContext(r.Context()).ReplaceLogger(log)
	ctx.Request = r

	user := AuthForRequest(r)
	if !CanManageExports(user) {
		h.respond(w, r, log, AuthFailed())
		return
	}

	res := h.h(w, r, ctx, user)
	if res == nil {
		res = &EmptyResponse{}
	}
	h.respond(w, r, log, res)
}

func (h handler) respond(w http.ResponseWriter, r *http.Request, log *logrus.Entry, res interface{}) {
	statusCode := http.StatusOK
	switch result := res.(type) {
	case *StreamedResponse:
		// handler already wrote the body
		metrics.HttpResponses.With(map[string]string{"action": h.action, "method": r.Method, "statusCode": "200"}).Inc()
		return
	case *ErrorResponse:
		switch result.Code {
		case common.ErrCodeBadRequest, common.ErrCodeNothingToExport:
			statusCode = http.StatusBadRequest
		case common.ErrCodeNotFound:
			statusCode = http.StatusNotFound
		case common.ErrCodeAuthFailed:
			statusCode = http.StatusUnauthorized
		case common.ErrCodeMethodNotAllowed:
			statusCode = http.StatusMethodNotAllowed
		case common.ErrCodeRateLimitExceeded:
			statusCode = http.StatusTooManyRequests
		default:
			statusCode = http.StatusInternalServerError
		}
	}

	b, err := json.Marshal(res)
	if err != nil {
		sentry.CaptureException(err)
		log.Error("error encoding response: ", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.Info("Responding with result: " + strconv.Itoa(statusCode))
	metrics.HttpResponses.With(map[string]string{"action": h.action, "method": r.Method, "statusCode": strconv.Itoa(statusCode)}).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(b)
}
