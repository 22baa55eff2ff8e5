package chat

import (
	"errors"
	"net/http"

	"github.com/agentkit/agentkit/internal/chat"
	"github.com/agentkit/agentkit/internal/httputil"
	logic "github.com/agentkit/agentkit/internal/logic/chat"
	"github.com/agentkit/agentkit/internal/provider"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func SendMessageHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SendMessageRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := logic.NewSendMessageLogic(r.Context(), svcCtx)
		resp, err := l.SendMessage(&req)
		if err != nil {
			var provErr *provider.ProviderError
			switch {
			case errors.As(err, &provErr):
				httputil.BadGateway(w, provErr.Error())
			case errors.Is(err, chat.ErrNoAPIKey):
				httputil.ErrorWithCode(w, http.StatusPaymentRequired, err.Error())
			default:
				httputil.Error(w, err)
			}
			return
		}
		httputil.OkJSON(w, resp)
	}
}
