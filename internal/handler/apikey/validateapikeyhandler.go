package apikey

import (
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	logic "github.com/agentkit/agentkit/internal/logic/apikey"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func ValidateAPIKeyHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ValidateAPIKeyRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := logic.NewValidateAPIKeyLogic(r.Context(), svcCtx)
		resp, err := l.ValidateAPIKey(&req)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		httputil.OkJSON(w, resp)
	}
}
