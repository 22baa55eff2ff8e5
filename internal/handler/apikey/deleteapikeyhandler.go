package apikey

import (
	"errors"
	"net/http"

	"github.com/agentkit/agentkit/internal/apikey"
	"github.com/agentkit/agentkit/internal/httputil"
	logic "github.com/agentkit/agentkit/internal/logic/apikey"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func DeleteAPIKeyHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.DeleteAPIKeyRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := logic.NewDeleteAPIKeyLogic(r.Context(), svcCtx)
		resp, err := l.DeleteAPIKey(&req)
		if err != nil {
			if errors.Is(err, apikey.ErrNotFound) {
				httputil.NotFound(w, err.Error())
				return
			}
			httputil.Error(w, err)
			return
		}
		httputil.OkJSON(w, resp)
	}
}
