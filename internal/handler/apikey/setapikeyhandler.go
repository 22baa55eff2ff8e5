package apikey

import (
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	logic "github.com/agentkit/agentkit/internal/logic/apikey"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func SetAPIKeyHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SetAPIKeyRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := logic.NewSetAPIKeyLogic(r.Context(), svcCtx)
		resp, err := l.SetAPIKey(&req)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		httputil.OkJSON(w, resp)
	}
}
