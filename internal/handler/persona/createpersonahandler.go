package persona

import (
	"errors"
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	logic "github.com/agentkit/agentkit/internal/logic/persona"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func CreatePersonaHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreatePersonaRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		l := logic.NewCreatePersonaLogic(r.Context(), svcCtx)
		resp, err := l.CreatePersona(&req)
		if err != nil {
			if errors.Is(err, logic.ErrAlreadyExists) {
				httputil.ErrorWithCode(w, http.StatusConflict, err.Error())
				return
			}
			httputil.Error(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, resp)
	}
}
