package provider

import (
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	"github.com/agentkit/agentkit/internal/provider"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

// ListModelsHandler returns every model the server can route, grouped by the
// provider that serves it.
func ListModelsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var models []types.ModelInfo
		for _, p := range provider.ListProviders() {
			for _, model := range p.Models {
				models = append(models, types.ModelInfo{
					Id:       model,
					Provider: p.ID,
					Label:    p.Icon + " " + model,
				})
			}
		}
		httputil.OkJSON(w, &types.ListModelsResponse{Models: models})
	}
}
