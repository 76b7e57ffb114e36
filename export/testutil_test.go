package export

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/glowbooth/media-export/common/config"
	"github.com/glowbooth/media-export/common/rcontext"
)

func testContext() rcontext.RequestContext {
	return rcontext.RequestContext{
		Context: context.Background(),
		Log:     logrus.WithField("test", true),
		Config:  config.NewDefaultServiceConfig(),
	}
}
