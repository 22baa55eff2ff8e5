package auth

import (
	"errors"
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	"github.com/agentkit/agentkit/internal/logic/auth"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func RefreshTokenHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RefreshRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := auth.NewRefreshTokenLogic(r.Context(), svcCtx)
		resp, err := l.RefreshToken(&req)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidRefreshToken) {
				httputil.Unauthorized(w, err.Error())
				return
			}
			httputil.Error(w, err)
			return
		}
		httputil.OkJSON(w, resp)
	}
}
