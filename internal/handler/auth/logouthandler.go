package auth

import (
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	"github.com/agentkit/agentkit/internal/logic/auth"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func LogoutHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LogoutRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := auth.NewLogoutLogic(r.Context(), svcCtx)
		resp, err := l.Logout(&req)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		httputil.OkJSON(w, resp)
	}
}
