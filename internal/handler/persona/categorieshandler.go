package persona

import (
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	"github.com/agentkit/agentkit/internal/logic/persona"
	"github.com/agentkit/agentkit/internal/svc"
)

func CategoriesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := persona.NewCategoriesLogic(r.Context(), svcCtx)
		resp, err := l.Categories()
		if err != nil {
			httputil.Error(w, err)
			return
		}
		httputil.OkJSON(w, resp)
	}
}
