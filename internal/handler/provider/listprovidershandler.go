package provider

import (
	"net/http"

	"github.com/agentkit/agentkit/internal/httputil"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/provider"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

// ListProvidersHandler returns the provider catalog, flagging the ones the
// caller already holds a key for.
func ListProvidersHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.GetUserID(r.Context())

		configured := map[string]bool{}
		if keys, err := svcCtx.Keys.List(r.Context(), userID); err == nil {
			for _, k := range keys {
				configured[k.Provider] = true
			}
		}

		providers := make([]types.ProviderInfo, 0)
		for _, p := range provider.ListProviders() {
			providers = append(providers, types.ProviderInfo{
				Id:     p.ID,
				Name:   p.Name,
				Icon:   p.Icon,
				Models: p.Models,
				HasKey: configured[p.ID],
			})
		}
		httputil.OkJSON(w, &types.ListProvidersResponse{Providers: providers})
	}
}
