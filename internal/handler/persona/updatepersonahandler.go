package persona

import (
	"errors"
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	logic "github.com/agentkit/agentkit/internal/logic/persona"
	"github.com/agentkit/agentkit/internal/persona"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func UpdatePersonaHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UpdatePersonaRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := logic.NewUpdatePersonaLogic(r.Context(), svcCtx)
		resp, err := l.UpdatePersona(&req)
		if err != nil {
			if errors.Is(err, persona.ErrNotFound) {
				httputil.NotFound(w, err.Error())
				return
			}
			httputil.Error(w, err)
			return
		}
		httputil.OkJSON(w, resp)
	}
}
