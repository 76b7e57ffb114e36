package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/sirupsen/logrus"

	"github.com/glowbooth/media-export/common/config"
)

var srv *http.Server

func Init(rt *Routes) {
	address := net.JoinHostPort(config.Get().General.BindAddress, strconv.Itoa(config.Get().General.Port))

	handler := buildRoutes(rt)

	if config.Get().RateLimit.Enabled {
		logrus.Debug("Enabling rate limit")
		handler = tollbooth.LimitHandler(requestLimiter(), handler)
	}

	// Bind Sentry here so we capture everything, including panics in routing
	sentryHandler := sentryhttp.New(sentryhttp.Options{})
	srv = &http.Server{Addr: address, Handler: sentryHandler.Handle(handler)}

	go func() {
		//goland:noinspection HttpUrlsUsage
		logrus.WithField("address", address).Info("Started up. Listening at http://" + address)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			sentry.CaptureException(err)
			logrus.Fatal(err)
		}
	}()
}

func Stop() {
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logrus.Warn("error shutting down webserver:", err)
		}
		srv = nil
	}
}

func requestLimiter() *limiter.Limiter {
	lim := tollbooth.NewLimiter(config.Get().RateLimit.RequestsPerSecond, nil)
	lim.SetBurst(config.Get().RateLimit.BurstCount)
	lim.SetMessageContentType("application/json")
	b, _ := json.Marshal(RateLimitReached())
	lim.SetMessage(string(b))
	return lim
}

func notFoundFn(w http.ResponseWriter, r *http.Request) {
	writeStatic(w, http.StatusNotFound, NotFoundError())
}

func methodNotAllowedFn(w http.ResponseWriter, r *http.Request) {
	writeStatic(w, http.StatusMethodNotAllowed, MethodNotAllowed())
}

func writeStatic(w http.ResponseWriter, statusCode int, res *ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	b, err := json.Marshal(res)
	if err != nil {
		logrus.Errorf("error preparing static response: %v", err)
		return
	}
	_, _ = w.Write(b)
}
