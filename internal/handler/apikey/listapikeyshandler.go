package apikey

import (
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	logic "github.com/agentkit/agentkit/internal/logic/apikey"
	"github.com/agentkit/agentkit/internal/svc"
)

func ListAPIKeysHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewListAPIKeysLogic(r.Context(), svcCtx)
		resp, err := l.ListAPIKeys()
		if err != nil {
			httputil.Error(w, err)
			return
		}
		httputil.OkJSON(w, resp)
	}
}
