package chat

import (
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	logic "github.com/agentkit/agentkit/internal/logic/chat"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func ClearHistoryHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ClearHistoryRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := logic.NewClearHistoryLogic(r.Context(), svcCtx)
		resp, err := l.ClearHistory(&req)
		if err != nil {
			httputil.Error(w, err)
			return
		}
		httputil.OkJSON(w, resp)
	}
}
