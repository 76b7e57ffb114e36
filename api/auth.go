package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/glowbooth/media-export/common/config"
	"github.com/glowbooth/media-export/util"
)

type UserInfo struct {
	Token   string
	IsAdmin bool
}

func AuthForRequest(r *http.Request) UserInfo {
	token := util.GetAccessTokenFromRequest(r)
	user := UserInfo{Token: token}

	conf := config.Get()
	if !conf.SharedSecret.Enabled {
		// No auth configured: everyone is an admin. Only sane for local
		// development, which is why the default config ships disabled
		// alongside a loopback bind address.
		user.IsAdmin = true
		return user
	}

	if token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(conf.SharedSecret.Token)) == 1 {
		user.IsAdmin = true
		return user
	}
	for _, adminToken := range conf.Admins {
		if token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) == 1 {
			user.IsAdmin = true
			return user
		}
	}

	return user
}

// CanManageExports is the single authorization capability the dashboards
// consume. Access decisions go through here rather than being re-derived
// per handler.
func CanManageExports(user UserInfo) bool {
	return user.IsAdmin
}
