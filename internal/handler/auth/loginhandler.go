package auth

import (
	"errors"
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	"github.com/agentkit/agentkit/internal/logic/auth"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func LoginHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := auth.NewLoginLogic(r.Context(), svcCtx)
		resp, err := l.Login(&req)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				httputil.Unauthorized(w, err.Error())
				return
			}
			httputil.Error(w, err)
			return
		}
		httputil.OkJSON(w, resp)
	}
}
