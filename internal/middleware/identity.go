package middleware

// identity.go resolves a stable caller identifier for rate-limit keys. The
// principal set by the access guard wins; otherwise the caller is "anon".

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-gallery/internal/model"
)

func callerID(c echo.Context) string {
	p, ok := PrincipalFrom(c)
	if !ok {
		return "anon"
	}
	switch p.Kind {
	case model.KindUser:
		return "u" + strconv.FormatInt(p.UserID, 10)
	case model.KindAdmin:
		return "a:" + p.Username
	}
	return "anon"
}
